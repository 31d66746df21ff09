package airctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	statusPath = "/di/v1/products/1/air"
	devicePath = "/di/v1/products/1/device"
)

// HTTPStatusReader polls the appliance's local HTTP API. The air
// endpoint carries live telemetry and filter counters, the device
// endpoint carries identity keys (DeviceId, name, modelid, swversion).
// Both are merged into a single DeviceStatus snapshot.
type HTTPStatusReader struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func CreateHTTPStatusReader(host string, port uint, timeout time.Duration, logger *zap.Logger) (*HTTPStatusReader, error) {
	if host == "" {
		return nil, errors.New("airctl: device host is required")
	}
	if port == 0 {
		port = 80
	}
	return &HTTPStatusReader{
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With(zap.String("device", host)),
	}, nil
}

func (r *HTTPStatusReader) Open() error {
	return nil
}

func (r *HTTPStatusReader) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

func (r *HTTPStatusReader) ReadStatus(ctx context.Context) (DeviceStatus, error) {
	device, err := r.getJSON(ctx, devicePath)
	if err != nil {
		return nil, err
	}
	air, err := r.getJSON(ctx, statusPath)
	if err != nil {
		return nil, err
	}
	status := make(DeviceStatus, len(device)+len(air))
	for k, v := range device {
		status[k] = v
	}
	for k, v := range air {
		status[k] = v
	}
	return status, nil
}

func (r *HTTPStatusReader) getJSON(ctx context.Context, path string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("status request failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("airctl: GET %s: unexpected status %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("airctl: GET %s: %w", path, err)
	}
	return decoded, nil
}
