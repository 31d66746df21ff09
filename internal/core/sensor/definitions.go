package sensor

import (
	"purair2mqtt/pkg/airctl"
)

// Device protocol keys, as reported by the appliance.
const (
	KEY_DEVICE_ID             = "DeviceId"
	KEY_ERROR_CODE            = "err"
	KEY_WATER_LEVEL           = "wl"
	KEY_AIR_QUALITY_INDEX     = "aqit"
	KEY_INDOOR_ALLERGEN_INDEX = "iaql"
	KEY_PM25                  = "pm25"
	KEY_TVOC                  = "tvoc"
	KEY_HUMIDITY              = "rh"
	KEY_TEMPERATURE           = "temp"

	FILTER_TYPE_PRE           = "filter_pre"
	FILTER_TYPE_HEPA          = "filter_hepa"
	FILTER_TYPE_ACTIVE_CARBON = "filter_active_carbon"
	FILTER_TYPE_WICK          = "wick"

	UNIT_PERCENT = "%"
	UNIT_INDEX   = "Index"
	UNIT_LEVEL   = "Level"
	UNIT_UG_M3   = "µg/m³"
	UNIT_CELSIUS = "°C"

	STATE_CLASS_MEASUREMENT  = "measurement"
	DEVICE_CLASS_HUMIDITY    = "humidity"
	DEVICE_CLASS_TEMPERATURE = "temperature"
)

// Error codes signaling an empty water tank. While one of these is
// active the reported water level is stale and must read as zero.
const (
	errCodeNoWater        = 32768
	errCodeNoWaterStandby = 49408
)

// Middle literals of the three derived filter keys. Shared by every
// filter type; only prefix and postfix vary.
const (
	filterStatusInfix = "sts"
	filterTotalInfix  = "total"
	filterTypeInfix   = "t"
)

// Convert maps a raw status value to its display value. The full
// snapshot is supplied for conversions that depend on sibling keys.
type Convert func(value any, status airctl.DeviceStatus) any

type SensorDescription struct {
	Label       string
	Unit        string
	DeviceClass string
	StateClass  string
	Icon        string
	Convert     Convert
}

type FilterDescription struct {
	Prefix  string
	Postfix string
}

var SensorTypes = map[string]SensorDescription{
	KEY_WATER_LEVEL: {
		Label: "water_level",
		Icon:  "mdi:water",
		Convert: func(value any, status airctl.DeviceStatus) any {
			if code, ok := airctl.Float(status[KEY_ERROR_CODE]); ok {
				if code == errCodeNoWater || code == errCodeNoWaterStandby {
					return 0
				}
			}
			return value
		},
	},
	KEY_AIR_QUALITY_INDEX: {
		Label: "air_quality_index",
	},
	KEY_INDOOR_ALLERGEN_INDEX: {
		Label:      "indoor_allergen_index",
		Unit:       UNIT_INDEX,
		StateClass: STATE_CLASS_MEASUREMENT,
		Icon:       "mdi:blur",
	},
	KEY_PM25: {
		Label:      "PM2.5",
		Unit:       UNIT_UG_M3,
		StateClass: STATE_CLASS_MEASUREMENT,
		Icon:       "mdi:blur",
	},
	KEY_TVOC: {
		Label:      "total_volatile_organic_compounds",
		Unit:       UNIT_LEVEL,
		StateClass: STATE_CLASS_MEASUREMENT,
		Icon:       "mdi:blur",
	},
	KEY_HUMIDITY: {
		Label:       "humidity",
		Unit:        UNIT_PERCENT,
		DeviceClass: DEVICE_CLASS_HUMIDITY,
		StateClass:  STATE_CLASS_MEASUREMENT,
	},
	KEY_TEMPERATURE: {
		Label:       "temperature",
		Unit:        UNIT_CELSIUS,
		DeviceClass: DEVICE_CLASS_TEMPERATURE,
		StateClass:  STATE_CLASS_MEASUREMENT,
	},
}

var FilterTypes = map[string]FilterDescription{
	FILTER_TYPE_PRE: {
		Prefix:  "flt",
		Postfix: "0",
	},
	FILTER_TYPE_HEPA: {
		Prefix:  "flt",
		Postfix: "1",
	},
	FILTER_TYPE_ACTIVE_CARBON: {
		Prefix:  "flt",
		Postfix: "2",
	},
	FILTER_TYPE_WICK: {
		Prefix:  "wick",
		Postfix: "",
	},
}

type FilterKeySet struct {
	Value string
	Total string
	Type  string
}

// FilterKeys derives the three related status keys of a filter type.
func FilterKeys(description FilterDescription) FilterKeySet {
	return FilterKeySet{
		Value: description.Prefix + filterStatusInfix + description.Postfix,
		Total: description.Prefix + filterTotalInfix + description.Postfix,
		Type:  description.Prefix + filterTypeInfix + description.Postfix,
	}
}
