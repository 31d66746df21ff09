package mqtt

import (
	"testing"

	"purair2mqtt/internal/core/domain"
	"purair2mqtt/internal/util"

	"github.com/stretchr/testify/assert"
)

func testClient() *MQTTClient {
	cfg := util.LoadTestConfig()
	return CreateMQTTClient(&cfg, OptsFromConfig(&cfg), nil, nil)
}

func TestHADiscoverySensorTopic(t *testing.T) {
	sensor := domain.GenericSensor{
		Device:     domain.Device{Id: "purair_abc123"},
		Id:         "pm25",
		SensorType: "sensor",
	}
	topic := HADiscoverySensorTopic("homeassistant", sensor)
	assert.Equal(t, "homeassistant/sensor/purair_abc123/pm25/config", topic)
}

func TestGenericSensorToHADiscoveryMessage(t *testing.T) {
	client := testClient()

	sensor := domain.GenericSensor{
		Device:            domain.Device{Id: "purair_abc123", Name: "Living room"},
		Id:                "pm25",
		SensorType:        "sensor",
		Name:              "Living room Pm2.5",
		UniqueId:          "AC2729-9f28e1a047c2-pm25",
		UnitOfMeasurement: "µg/m³",
		StateClass:        "measurement",
		Icon:              "mdi:blur",
	}

	msg := GenericSensorToHADiscoveryMessage(client, sensor)

	assert.Equal(t, "purair/sensor/pm25/state", msg.StateTopic)
	assert.Equal(t, "purair/bridge/state", msg.AvTopic)
	assert.Equal(t, "AC2729-9f28e1a047c2-pm25", msg.UniqueId)
	assert.Equal(t, "mqtt", msg.Platform)
	assert.Equal(t, []string{"purair_abc123"}, msg.Device.Id)
	assert.Empty(t, msg.JsonAttributesTopic)
}

func TestGenericSensorToHADiscoveryMessageWithAttributes(t *testing.T) {
	client := testClient()

	sensor := domain.GenericSensor{
		Device:         domain.Device{Id: "purair_abc123"},
		Id:             "filter_hepa",
		SensorType:     "sensor",
		Name:           "Living room Filter Hepa",
		UniqueId:       "AC2729-9f28e1a047c2-filter_hepa",
		WithAttributes: true,
	}

	msg := GenericSensorToHADiscoveryMessage(client, sensor)

	assert.Equal(t, "purair/sensor/filter_hepa/state", msg.StateTopic)
	assert.Equal(t, "purair/sensor/filter_hepa/attributes", msg.JsonAttributesTopic)
}

func TestGenericSensorToHADiscoveryMessageBridgeState(t *testing.T) {
	client := testClient()

	sensor := domain.GenericSensor{
		Device:     domain.Device{Id: "purair_bridge"},
		Id:         domain.SENSOR_ID_BRIDGE_STATE,
		SensorType: "binary_sensor",
		Name:       "Bridge state",
	}

	msg := GenericSensorToHADiscoveryMessage(client, sensor)

	assert.Equal(t, "purair/bridge/state", msg.StateTopic)
	assert.Equal(t, MQTT_PAYLOAD_ONLINE, msg.PayloadOn)
	assert.Equal(t, MQTT_PAYLOAD_OFFLINE, msg.PayloadOff)
}
