package sensor

import (
	"fmt"
	"strings"
	"unicode"

	"purair2mqtt/pkg/airctl"
)

// StatusProvider hands out the latest device status snapshot. Entities
// hold a provider and re-read it on every access, so reads always
// reflect the most recent refresh.
type StatusProvider interface {
	Status() airctl.DeviceStatus
}

// Entity is the read-only view one sensor exposes to the publishing
// layer.
type Entity interface {
	Kind() string
	UniqueId() string
	Name() string
	State() (any, error)
	Unit() string
	DeviceClass() string
	StateClass() string
	Icon() string
}

// AttributeEntity is an Entity that also derives extra state
// attributes from the snapshot.
type AttributeEntity interface {
	Entity
	Attributes() (map[string]any, error)
}

// DeviceSensor binds one declared sensor description to one status
// key. Purely a read-through formatter, no state of its own.
type DeviceSensor struct {
	provider    StatusProvider
	description SensorDescription
	kind        string
	name        string
	uniqueId    string
}

func NewDeviceSensor(provider StatusProvider, name string, model string, kind string) (*DeviceSensor, error) {
	description, ok := SensorTypes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown sensor kind %q", kind)
	}
	deviceId, err := deviceId(provider.Status())
	if err != nil {
		return nil, err
	}
	return &DeviceSensor{
		provider:    provider,
		description: description,
		kind:        kind,
		name:        fmt.Sprintf("%s %s", name, displayLabel(description.Label)),
		uniqueId:    fmt.Sprintf("%s-%s-%s", model, deviceId, strings.ToLower(kind)),
	}, nil
}

func (s *DeviceSensor) Kind() string {
	return s.kind
}

func (s *DeviceSensor) UniqueId() string {
	return s.uniqueId
}

func (s *DeviceSensor) Name() string {
	return s.name
}

func (s *DeviceSensor) Unit() string {
	return s.description.Unit
}

func (s *DeviceSensor) DeviceClass() string {
	return s.description.DeviceClass
}

func (s *DeviceSensor) StateClass() string {
	return s.description.StateClass
}

func (s *DeviceSensor) Icon() string {
	return s.description.Icon
}

// State re-fetches the sensor key from the live snapshot and applies
// the optional conversion.
func (s *DeviceSensor) State() (any, error) {
	status := s.provider.Status()
	value, ok := status.Get(s.kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, s.kind)
	}
	if s.description.Convert != nil {
		value = s.description.Convert(value, status)
	}
	return value, nil
}

func deviceId(status airctl.DeviceStatus) (string, error) {
	value, ok := status.Get(KEY_DEVICE_ID)
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrNotReady, KEY_DEVICE_ID)
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: empty %q", ErrNotReady, KEY_DEVICE_ID)
	}
	return id, nil
}

// displayLabel turns a label into its display form: underscores become
// spaces, then every letter starting a word is upcased and the rest
// downcased ("pre_filter" => "Pre Filter").
func displayLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	prevLetter := false
	for _, r := range strings.ReplaceAll(label, "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
