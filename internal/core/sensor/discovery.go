package sensor

import (
	"sort"

	"purair2mqtt/internal/core/domain"
)

// BuildEntities enumerates every declared sensor kind and filter type
// and constructs an entity for each one backed by the current
// snapshot. An empty snapshot yields no entities.
func BuildEntities(provider StatusProvider, name string, model string) ([]Entity, error) {
	status := provider.Status()
	if len(status) == 0 {
		return nil, nil
	}

	var entities []Entity
	for _, kind := range sortedKeys(SensorTypes) {
		if !status.Has(kind) {
			continue
		}
		s, err := NewDeviceSensor(provider, name, model, kind)
		if err != nil {
			return nil, err
		}
		entities = append(entities, s)
	}
	for _, kind := range sortedKeys(FilterTypes) {
		if !FilterSupported(status, kind) {
			continue
		}
		f, err := NewFilterSensor(provider, name, model, kind)
		if err != nil {
			return nil, err
		}
		entities = append(entities, f)
	}
	return entities, nil
}

// EntityToGenericSensor maps an entity to its MQTT discovery record.
func EntityToGenericSensor(entity Entity, device domain.Device) domain.GenericSensor {
	_, withAttributes := entity.(AttributeEntity)
	return domain.GenericSensor{
		Device:            device,
		Id:                entity.Kind(),
		SensorType:        domain.SENSOR_TYPE_SENSOR,
		Name:              entity.Name(),
		UniqueId:          entity.UniqueId(),
		UnitOfMeasurement: entity.Unit(),
		StateClass:        entity.StateClass(),
		DeviceClass:       entity.DeviceClass(),
		Icon:              entity.Icon(),
		WithAttributes:    withAttributes,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
