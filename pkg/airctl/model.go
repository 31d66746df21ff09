package airctl

import "context"

// DeviceStatus is a snapshot of the appliance state: a flat map of
// protocol keys to scalar values, as returned by the device status
// endpoints. Snapshots are never mutated after being returned.
type DeviceStatus map[string]any

func (s DeviceStatus) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s DeviceStatus) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Float coerces a status value to float64. JSON decoding yields
// float64, but canned and converted statuses may carry int values.
func Float(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

type StatusReader interface {
	Open() error
	Close() error
	ReadStatus(ctx context.Context) (DeviceStatus, error)
}
