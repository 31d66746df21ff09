package actor

import (
	"context"
	"sync"
	"testing"
	"time"

	adactor "purair2mqtt/internal/adapter/actor"
	"purair2mqtt/internal/core/domain"
	"purair2mqtt/internal/core/service"
	"purair2mqtt/internal/util"
	"purair2mqtt/pkg/airctl"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// scriptedStatusReader serves whatever snapshot the test sets, so a
// poll cycle can be driven through degraded device states.
type scriptedStatusReader struct {
	mu     sync.Mutex
	status airctl.DeviceStatus
}

func (r *scriptedStatusReader) Open() error {
	return nil
}

func (r *scriptedStatusReader) Close() error {
	return nil
}

func (r *scriptedStatusReader) ReadStatus(_ context.Context) (airctl.DeviceStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, nil
}

func (r *scriptedStatusReader) set(status airctl.DeviceStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

type eventCollector struct {
	mu     sync.Mutex
	events []domain.SensorUpdateEvent
}

func (c *eventCollector) add(value any) {
	if ev, ok := value.(domain.SensorUpdateEvent); ok {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.events = append(c.events, ev)
	}
}

func (c *eventCollector) sensorIds() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make(map[string]int)
	for _, ev := range c.events {
		ids[ev.SensorId()]++
	}
	return ids
}

func (c *eventCollector) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

func monitorSnapshot() airctl.DeviceStatus {
	return airctl.DeviceStatus{
		"DeviceId":  "9f28e1a047c2",
		"pm25":      4,
		"rh":        48,
		"fltt1":     "A3",
		"fltsts1":   4064,
		"flttotal1": 4800,
	}
}

func TestMonitorActorRetriesUntilDeviceReady(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	// ticks are driven by hand
	cfg.MonitorConfig.PollIntervalMillis = 0
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	// device not fully booted yet: identity key missing
	notReady := monitorSnapshot()
	delete(notReady, "DeviceId")
	reader := &scriptedStatusReader{status: notReady}

	deviceProps := actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewDeviceActor(reader, 1*time.Second, logger)
	})
	devicePid, err := context.SpawnNamed(deviceProps, "device")
	if err != nil {
		t.Error(err)
		return
	}

	stream := &eventstream.EventStream{}
	collector := &eventCollector{}
	sub := stream.Subscribe(collector.add)
	defer stream.Unsubscribe(sub)

	store := service.NewStatusStore()

	monitorProps := actor.PropsFromProducer(func() actor.Actor {
		return NewMonitorActor(&cfg, devicePid, stream, store, logger)
	})
	monitorPid, err := context.SpawnNamed(monitorProps, "monitor")
	if err != nil {
		t.Error(err)
		return
	}

	// first poll runs on start: store refreshed, no entities yet
	time.Sleep(500 * time.Millisecond)
	assert.NotEmpty(t, store.Status())
	assert.Empty(t, collector.sensorIds())

	res, err := context.RequestFuture(monitorPid, domain.ActorHealthRequest{}, 5*time.Second).Result()
	assert.NoError(t, err)
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.True(t, healthResp.Healthy)
	assert.Equal(t, "waiting_first_status", healthResp.State)

	// device becomes ready, next poll builds entities and publishes
	reader.set(monitorSnapshot())
	context.Send(monitorPid, monitorTick{})
	time.Sleep(500 * time.Millisecond)

	ids := collector.sensorIds()
	assert.Contains(t, ids, "pm25")
	assert.Contains(t, ids, "rh")
	assert.Contains(t, ids, "filter_hepa")

	res, err = context.RequestFuture(monitorPid, domain.ActorHealthRequest{}, 5*time.Second).Result()
	assert.NoError(t, err)
	healthResp, ok = res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.Equal(t, "idle", healthResp.State)

	context.Stop(monitorPid)
	context.Stop(devicePid)

	as.Shutdown()
}

func TestMonitorActorSkipsFailingEntity(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	cfg.MonitorConfig.PollIntervalMillis = 0
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	reader := &scriptedStatusReader{status: monitorSnapshot()}

	deviceProps := actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewDeviceActor(reader, 1*time.Second, logger)
	})
	devicePid, err := context.SpawnNamed(deviceProps, "device")
	if err != nil {
		t.Error(err)
		return
	}

	stream := &eventstream.EventStream{}
	collector := &eventCollector{}
	sub := stream.Subscribe(collector.add)
	defer stream.Unsubscribe(sub)

	store := service.NewStatusStore()

	monitorProps := actor.PropsFromProducer(func() actor.Actor {
		return NewMonitorActor(&cfg, devicePid, stream, store, logger)
	})
	monitorPid, err := context.SpawnNamed(monitorProps, "monitor")
	if err != nil {
		t.Error(err)
		return
	}

	// first poll: every entity publishes
	time.Sleep(500 * time.Millisecond)
	ids := collector.sensorIds()
	assert.Contains(t, ids, "pm25")
	assert.Contains(t, ids, "rh")
	assert.Contains(t, ids, "filter_hepa")

	// one key vanishes: its entity is skipped, siblings keep publishing
	degraded := monitorSnapshot()
	delete(degraded, "pm25")
	reader.set(degraded)
	collector.clear()

	context.Send(monitorPid, monitorTick{})
	time.Sleep(500 * time.Millisecond)

	ids = collector.sensorIds()
	assert.NotContains(t, ids, "pm25")
	assert.Contains(t, ids, "rh")
	assert.Contains(t, ids, "filter_hepa")

	context.Stop(monitorPid)
	context.Stop(devicePid)

	as.Shutdown()
}
