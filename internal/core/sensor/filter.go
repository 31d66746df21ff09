package sensor

import (
	"fmt"
	"math"

	"purair2mqtt/pkg/airctl"
)

// Attribute keys of the filter JSON attributes document.
const (
	ATTR_RAW            = "raw"
	ATTR_TYPE           = "type"
	ATTR_TOTAL          = "total"
	ATTR_TIME_REMAINING = "time_remaining"
)

// FilterSensor derives a filter's state from up to three related
// status keys. With a total key it reports a percentage of filter
// life, without one it reports the value as a remaining-hours
// duration text.
type FilterSensor struct {
	provider StatusProvider
	keys     FilterKeySet
	kind     string
	name     string
	uniqueId string
	// hasTotal is fixed at construction time and selects the
	// percentage branch. The total key is still re-read per access.
	hasTotal bool
}

// FilterSupported reports whether a filter type is backed by the
// snapshot, i.e. its derived value key exists.
func FilterSupported(status airctl.DeviceStatus, kind string) bool {
	description, ok := FilterTypes[kind]
	if !ok {
		return false
	}
	return status.Has(FilterKeys(description).Value)
}

func NewFilterSensor(provider StatusProvider, name string, model string, kind string) (*FilterSensor, error) {
	description, ok := FilterTypes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown filter type %q", kind)
	}
	status := provider.Status()
	deviceId, err := deviceId(status)
	if err != nil {
		return nil, err
	}
	keys := FilterKeys(description)
	return &FilterSensor{
		provider: provider,
		keys:     keys,
		kind:     kind,
		name:     fmt.Sprintf("%s %s", name, displayLabel(kind)),
		uniqueId: fmt.Sprintf("%s-%s-%s", model, deviceId, kind),
		hasTotal: status.Has(keys.Total),
	}, nil
}

func (s *FilterSensor) Kind() string {
	return s.kind
}

func (s *FilterSensor) UniqueId() string {
	return s.uniqueId
}

func (s *FilterSensor) Name() string {
	return s.name
}

func (s *FilterSensor) Unit() string {
	if s.hasTotal {
		return UNIT_PERCENT
	}
	return ""
}

func (s *FilterSensor) DeviceClass() string {
	return ""
}

func (s *FilterSensor) StateClass() string {
	return ""
}

func (s *FilterSensor) Icon() string {
	return "mdi:air-filter"
}

func (s *FilterSensor) State() (any, error) {
	if s.hasTotal {
		return s.percentage()
	}
	hours, err := s.value()
	if err != nil {
		return nil, err
	}
	return FormatHours(hours), nil
}

// Attributes rebuilds the extra state attributes from the live
// snapshot on every call.
func (s *FilterSensor) Attributes() (map[string]any, error) {
	status := s.provider.Status()
	attrs := make(map[string]any)
	if filterType, ok := status.Get(s.keys.Type); ok {
		attrs[ATTR_TYPE] = filterType
	}
	raw, ok := status.Get(s.keys.Value)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, s.keys.Value)
	}
	attrs[ATTR_RAW] = raw
	if s.hasTotal {
		total, err := s.total()
		if err != nil {
			return nil, err
		}
		attrs[ATTR_TOTAL] = total
		hours, err := s.value()
		if err != nil {
			return nil, err
		}
		attrs[ATTR_TIME_REMAINING] = FormatHours(hours)
	}
	return attrs, nil
}

func (s *FilterSensor) percentage() (float64, error) {
	value, err := s.value()
	if err != nil {
		return 0, err
	}
	total, err := s.total()
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: %q", ErrZeroTotal, s.keys.Total)
	}
	return math.Round(100.0*value/total*100) / 100, nil
}

func (s *FilterSensor) value() (float64, error) {
	return s.floatKey(s.keys.Value)
}

func (s *FilterSensor) total() (float64, error) {
	return s.floatKey(s.keys.Total)
}

func (s *FilterSensor) floatKey(key string) (float64, error) {
	raw, ok := s.provider.Status().Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	value, ok := airctl.Float(raw)
	if !ok {
		return 0, fmt.Errorf("status key %q is not numeric: %v", key, raw)
	}
	return value, nil
}
