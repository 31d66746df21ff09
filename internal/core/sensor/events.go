package sensor

import (
	"fmt"
	"math"

	"purair2mqtt/internal/core/domain"
	"purair2mqtt/pkg/airctl"
)

// EntityUpdateEvents reads an entity and turns the result into sensor
// update events: one state event, plus an attributes event when the
// entity carries extra attributes. A failed read returns the error
// untouched so the caller can skip this entity without affecting its
// siblings.
func EntityUpdateEvents(entity Entity) ([]domain.SensorUpdateEvent, error) {
	value, err := entity.State()
	if err != nil {
		return nil, err
	}

	var events []domain.SensorUpdateEvent
	if text, ok := value.(string); ok {
		events = append(events, domain.TextSensorUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
				Id: entity.Kind(),
			},
			Value: text,
		})
	} else if number, ok := airctl.Float(value); ok {
		events = append(events, domain.FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
				Id: entity.Kind(),
			},
			Value:    number,
			Decimals: decimals(number),
		})
	} else {
		events = append(events, domain.TextSensorUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
				Id: entity.Kind(),
			},
			Value: fmt.Sprintf("%v", value),
		})
	}

	if attributed, ok := entity.(AttributeEntity); ok {
		attrs, err := attributed.Attributes()
		if err != nil {
			return nil, err
		}
		events = append(events, domain.AttributesUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
				Id: entity.Kind(),
			},
			Attributes: attrs,
		})
	}
	return events, nil
}

func decimals(value float64) uint {
	if value == math.Trunc(value) {
		return 0
	}
	return 2
}
