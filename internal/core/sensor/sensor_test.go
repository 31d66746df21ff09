package sensor

import (
	"errors"
	"testing"

	"purair2mqtt/internal/core/domain"
	"purair2mqtt/pkg/airctl"

	"github.com/stretchr/testify/assert"
)

func deviceFixture() domain.Device {
	return domain.Device{
		Id:   "purair_test",
		Name: "Living room",
	}
}

type snapshotProvider struct {
	status airctl.DeviceStatus
}

func (p *snapshotProvider) Status() airctl.DeviceStatus {
	return p.status
}

func testStatus() airctl.DeviceStatus {
	return airctl.DeviceStatus{
		"DeviceId": "9f28e1a047c2",
		"err":      0,
		"pm25":     4,
		"iaql":     2,
		"rh":       48,
		"temp":     22,
		"wl":       100,
	}
}

func TestDeviceSensorIdentity(t *testing.T) {
	provider := &snapshotProvider{status: testStatus()}

	s, err := NewDeviceSensor(provider, "Living room", "AC2729/10", KEY_PM25)
	assert.NoError(t, err)

	assert.Equal(t, "AC2729/10-9f28e1a047c2-pm25", s.UniqueId())
	assert.Equal(t, "Living room Pm2.5", s.Name())
	assert.Equal(t, UNIT_UG_M3, s.Unit())
	assert.Equal(t, STATE_CLASS_MEASUREMENT, s.StateClass())
}

func TestDeviceSensorNameFromLabel(t *testing.T) {
	provider := &snapshotProvider{status: testStatus()}

	s, err := NewDeviceSensor(provider, "Bedroom", "AC2729", KEY_WATER_LEVEL)
	assert.NoError(t, err)
	assert.Equal(t, "Bedroom Water Level", s.Name())

	s, err = NewDeviceSensor(provider, "Bedroom", "AC2729", KEY_HUMIDITY)
	assert.NoError(t, err)
	assert.Equal(t, "Bedroom Humidity", s.Name())
}

func TestDeviceSensorNotReadyWithoutDeviceId(t *testing.T) {
	status := testStatus()
	delete(status, KEY_DEVICE_ID)
	provider := &snapshotProvider{status: status}

	_, err := NewDeviceSensor(provider, "Living room", "AC2729", KEY_PM25)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotReady))
}

func TestDeviceSensorStateReadsLiveSnapshot(t *testing.T) {
	provider := &snapshotProvider{status: testStatus()}

	s, err := NewDeviceSensor(provider, "Living room", "AC2729", KEY_PM25)
	assert.NoError(t, err)

	value, err := s.State()
	assert.NoError(t, err)
	assert.EqualValues(t, 4, value)

	// refresh the snapshot, the sensor must follow
	next := testStatus()
	next[KEY_PM25] = 9
	provider.status = next

	value, err = s.State()
	assert.NoError(t, err)
	assert.EqualValues(t, 9, value)
}

func TestDeviceSensorStateKeyNotFound(t *testing.T) {
	provider := &snapshotProvider{status: testStatus()}

	s, err := NewDeviceSensor(provider, "Living room", "AC2729", KEY_PM25)
	assert.NoError(t, err)

	next := testStatus()
	delete(next, KEY_PM25)
	provider.status = next

	_, err = s.State()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestWaterLevelReadsZeroOnEmptyTank(t *testing.T) {
	for _, code := range []int{32768, 49408} {
		status := testStatus()
		status[KEY_ERROR_CODE] = code
		provider := &snapshotProvider{status: status}

		s, err := NewDeviceSensor(provider, "Living room", "AC2729", KEY_WATER_LEVEL)
		assert.NoError(t, err)

		value, err := s.State()
		assert.NoError(t, err)
		assert.EqualValues(t, 0, value)
	}

	// any other error code leaves the level untouched
	provider := &snapshotProvider{status: testStatus()}
	s, err := NewDeviceSensor(provider, "Living room", "AC2729", KEY_WATER_LEVEL)
	assert.NoError(t, err)

	value, err := s.State()
	assert.NoError(t, err)
	assert.EqualValues(t, 100, value)
}

func TestBuildEntitiesMatchesSnapshot(t *testing.T) {
	status := testStatus()
	status["fltsts0"] = 258
	status["fltsts1"] = 4064
	status["flttotal1"] = 4800
	provider := &snapshotProvider{status: status}

	entities, err := BuildEntities(provider, "Living room", "AC2729")
	assert.NoError(t, err)

	kinds := make(map[string]bool)
	for _, e := range entities {
		kinds[e.Kind()] = true
	}
	assert.True(t, kinds[KEY_PM25])
	assert.True(t, kinds[KEY_HUMIDITY])
	assert.True(t, kinds[KEY_WATER_LEVEL])
	assert.True(t, kinds[FILTER_TYPE_PRE])
	assert.True(t, kinds[FILTER_TYPE_HEPA])
	// keys absent from the snapshot must not produce entities
	assert.False(t, kinds[KEY_TVOC])
	assert.False(t, kinds[FILTER_TYPE_ACTIVE_CARBON])
	assert.False(t, kinds[FILTER_TYPE_WICK])
}

func TestBuildEntitiesEmptySnapshot(t *testing.T) {
	provider := &snapshotProvider{status: airctl.DeviceStatus{}}

	entities, err := BuildEntities(provider, "Living room", "AC2729")
	assert.NoError(t, err)
	assert.Empty(t, entities)
}

func TestEntityToGenericSensorAttributesFlag(t *testing.T) {
	status := testStatus()
	status["fltsts1"] = 4064
	status["flttotal1"] = 4800
	provider := &snapshotProvider{status: status}

	plain, err := NewDeviceSensor(provider, "Living room", "AC2729", KEY_PM25)
	assert.NoError(t, err)
	filter, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_HEPA)
	assert.NoError(t, err)

	assert.False(t, EntityToGenericSensor(plain, deviceFixture()).WithAttributes)
	assert.True(t, EntityToGenericSensor(filter, deviceFixture()).WithAttributes)
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Water Level", displayLabel("water_level"))
	assert.Equal(t, "Pm2.5", displayLabel("PM2.5"))
	assert.Equal(t, "Filter Pre", displayLabel("filter_pre"))
	assert.Equal(t, "Wick", displayLabel("wick"))
}
