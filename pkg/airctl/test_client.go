package airctl

import "context"

func CreateTestStatusReader() (StatusReader, error) {
	return TestStatusReader{}, nil
}

// TestStatusReader serves a canned AC2729 snapshot: live air quality
// telemetry, a pre-filter and wick on hour countdowns, and a HEPA and
// active carbon filter with totals.
type TestStatusReader struct {
}

func (reader TestStatusReader) Open() error {
	return nil
}

func (reader TestStatusReader) Close() error {
	return nil
}

func (reader TestStatusReader) ReadStatus(_ context.Context) (DeviceStatus, error) {
	return DeviceStatus{
		"DeviceId":  "9f28e1a047c2",
		"name":      "Living room",
		"modelid":   "AC2729/10",
		"swversion": "0.2.1",
		"err":       0,
		"pm25":      4,
		"iaql":      2,
		"aqit":      4,
		"tvoc":      1,
		"rh":        48,
		"temp":      22,
		"wl":        100,
		"fltsts0":   258,
		"fltt1":     "A3",
		"fltsts1":   4064,
		"flttotal1": 4800,
		"fltt2":     "C7",
		"fltsts2":   2385,
		"flttotal2": 4800,
		"wicksts":   4320,
	}, nil
}
