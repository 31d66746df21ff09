package sensor

import (
	"errors"
	"testing"

	"purair2mqtt/pkg/airctl"

	"github.com/stretchr/testify/assert"
)

func filterStatus() airctl.DeviceStatus {
	return airctl.DeviceStatus{
		"DeviceId":  "9f28e1a047c2",
		"fltsts0":   258,
		"fltt1":     "A3",
		"fltsts1":   4064,
		"flttotal1": 4800,
		"fltt2":     "C7",
		"fltsts2":   2385,
		"flttotal2": 4800,
		"wicksts":   4320,
	}
}

func TestFilterKeysDerivation(t *testing.T) {
	keys := FilterKeys(FilterTypes[FILTER_TYPE_HEPA])
	assert.Equal(t, "fltsts1", keys.Value)
	assert.Equal(t, "flttotal1", keys.Total)
	assert.Equal(t, "fltt1", keys.Type)

	keys = FilterKeys(FilterTypes[FILTER_TYPE_WICK])
	assert.Equal(t, "wicksts", keys.Value)
	assert.Equal(t, "wicktotal", keys.Total)
	assert.Equal(t, "wickt", keys.Type)
}

func TestFilterSupported(t *testing.T) {
	status := filterStatus()
	assert.True(t, FilterSupported(status, FILTER_TYPE_PRE))
	assert.True(t, FilterSupported(status, FILTER_TYPE_HEPA))
	assert.True(t, FilterSupported(status, FILTER_TYPE_WICK))
	assert.False(t, FilterSupported(airctl.DeviceStatus{}, FILTER_TYPE_HEPA))
	assert.False(t, FilterSupported(status, "filter_unknown"))
}

func TestFilterSensorIdentity(t *testing.T) {
	provider := &snapshotProvider{status: filterStatus()}

	f, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_HEPA)
	assert.NoError(t, err)

	assert.Equal(t, "AC2729-9f28e1a047c2-filter_hepa", f.UniqueId())
	assert.Equal(t, "Living room Filter Hepa", f.Name())
	assert.Equal(t, UNIT_PERCENT, f.Unit())
}

func TestFilterSensorNotReadyWithoutDeviceId(t *testing.T) {
	status := filterStatus()
	delete(status, KEY_DEVICE_ID)
	provider := &snapshotProvider{status: status}

	_, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_HEPA)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotReady))
}

func TestFilterPercentage(t *testing.T) {
	provider := &snapshotProvider{status: filterStatus()}

	f, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_HEPA)
	assert.NoError(t, err)

	value, err := f.State()
	assert.NoError(t, err)
	assert.Equal(t, 84.67, value)
}

func TestFilterPercentageTracksSnapshot(t *testing.T) {
	provider := &snapshotProvider{status: filterStatus()}

	f, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_HEPA)
	assert.NoError(t, err)

	next := filterStatus()
	next["fltsts1"] = 2400
	provider.status = next

	value, err := f.State()
	assert.NoError(t, err)
	assert.Equal(t, 50.0, value)
}

func TestFilterPercentageZeroTotal(t *testing.T) {
	status := filterStatus()
	status["flttotal1"] = 0
	provider := &snapshotProvider{status: status}

	f, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_HEPA)
	assert.NoError(t, err)

	_, err = f.State()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrZeroTotal))
}

func TestFilterDurationWithoutTotal(t *testing.T) {
	status := filterStatus()
	status["fltsts0"] = 48
	provider := &snapshotProvider{status: status}

	f, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_PRE)
	assert.NoError(t, err)

	assert.Equal(t, "", f.Unit())

	value, err := f.State()
	assert.NoError(t, err)
	assert.Equal(t, "2 days, 0:00:00", value)
}

// The mode is selected once at construction. Dropping the total key
// afterwards makes the percentage read fail instead of silently
// switching to the duration form.
func TestFilterModeFixedAtConstruction(t *testing.T) {
	provider := &snapshotProvider{status: filterStatus()}

	f, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_HEPA)
	assert.NoError(t, err)

	next := filterStatus()
	delete(next, "flttotal1")
	provider.status = next

	_, err = f.State()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestFilterAttributes(t *testing.T) {
	provider := &snapshotProvider{status: filterStatus()}

	f, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_HEPA)
	assert.NoError(t, err)

	attrs, err := f.Attributes()
	assert.NoError(t, err)
	assert.Equal(t, "A3", attrs[ATTR_TYPE])
	assert.EqualValues(t, 4064, attrs[ATTR_RAW])
	assert.EqualValues(t, 4800.0, attrs[ATTR_TOTAL])
	assert.Equal(t, "169 days, 8:00:00", attrs[ATTR_TIME_REMAINING])
}

func TestFilterAttributesWithoutTotal(t *testing.T) {
	provider := &snapshotProvider{status: filterStatus()}

	f, err := NewFilterSensor(provider, "Living room", "AC2729", FILTER_TYPE_WICK)
	assert.NoError(t, err)

	attrs, err := f.Attributes()
	assert.NoError(t, err)
	assert.EqualValues(t, 4320, attrs[ATTR_RAW])
	assert.NotContains(t, attrs, ATTR_TYPE)
	assert.NotContains(t, attrs, ATTR_TOTAL)
	assert.NotContains(t, attrs, ATTR_TIME_REMAINING)
}
