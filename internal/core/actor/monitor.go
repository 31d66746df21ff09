package actor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"purair2mqtt/internal/config"
	"purair2mqtt/internal/core/domain"
	"purair2mqtt/internal/core/sensor"
	"purair2mqtt/internal/core/service"
	. "purair2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

// MonitorActor polls the device actor on a fixed schedule, keeps the
// shared status snapshot fresh and publishes sensor update events on
// the event stream.
type MonitorActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler quartz.Scheduler

	deviceActor *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream
	store       *service.StatusStore
	entities    []sensor.Entity

	logger *zap.Logger
}

type monitorTick struct {
}

func NewMonitorActor(config *config.Config, deviceActor *actor.PID, eventStream *eventstream.EventStream,
	store *service.StatusStore, logger *zap.Logger) *MonitorActor {
	act := &MonitorActor{
		config:      config,
		deviceActor: deviceActor,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_MONITOR, logger),
		eventStream: eventStream,
		store:       store,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MonitorActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MonitorActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("monitor@starting started")

		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			if err := state.startScheduler(ctx); err != nil {
				panic(err)
			}
		}
		// first poll right away so discovery has data to work with
		ctx.Send(ctx.Self(), monitorTick{})

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.stopScheduler()
	default:
		state.logger.Debug("monitor@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("monitor@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MONITOR,
			Healthy: true,
			State:   state.healthState(),
		})
	case monitorTick:
		state.logger.Debug("monitor@default tick")
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.GetStatusRequest{}, 5*time.Second), func(err error) any {
			return domain.GetStatusResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.BecomeStacked(state.WaitingStatusReceive)
	case *actor.Restarting:
		state.stopScheduler()
	case *actor.Stopping:
		state.stopScheduler()
	default:
		state.logger.Debug("monitor@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingStatusReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetStatusResponse:
		if msg.HasResponseError() {
			state.logger.Error("monitor@waiting GetStatusResponse error", zap.Error(msg.GetResponseError()))
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("monitor@waiting GetStatusResponse")
		state.store.Update(msg.Status)
		state.publishUpdates()

		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.stopScheduler()
	case *actor.Stopping:
		state.stopScheduler()
	default:
		state.logger.Debug("monitor@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

// publishUpdates builds the entity set on the first good snapshot and
// turns every entity read into events on the event stream. A failing
// entity only costs its own events.
func (state *MonitorActor) publishUpdates() {
	if state.entities == nil {
		entities, err := sensor.BuildEntities(state.store, state.config.Device.Name, state.config.Device.Model)
		if err != nil {
			if errors.Is(err, sensor.ErrNotReady) {
				state.logger.Warn("monitor: device not ready, retrying next poll")
			} else {
				state.logger.Error("monitor: could not build entities", zap.Error(err))
			}
			return
		}
		state.entities = entities
		state.logger.Sugar().Infof("monitor: tracking %d entities", len(entities))
	}
	for _, entity := range state.entities {
		evs, err := sensor.EntityUpdateEvents(entity)
		if err != nil {
			state.logger.Warn("monitor: entity read failed", zap.String("entity", entity.Kind()), zap.Error(err))
			continue
		}
		for _, ev := range evs {
			state.eventStream.Publish(ev)
		}
	}
}

func (state *MonitorActor) startScheduler(ctx actor.Context) error {
	system := ctx.ActorSystem()
	self := ctx.Self()

	state.scheduler = quartz.NewStdScheduler()
	state.scheduler.Start(context.Background())

	tickJob := job.NewFunctionJob(func(_ context.Context) (bool, error) {
		system.Root.Send(self, monitorTick{})
		return true, nil
	})
	interval := time.Duration(state.config.MonitorConfig.PollIntervalMillis) * time.Millisecond
	detail := quartz.NewJobDetail(tickJob, quartz.NewJobKey("monitor-poll"))
	return state.scheduler.ScheduleJob(detail, quartz.NewSimpleTrigger(interval))
}

func (state *MonitorActor) stopScheduler() {
	if state.scheduler != nil {
		state.scheduler.Stop()
		state.scheduler = nil
	}
}

func (state *MonitorActor) healthState() string {
	if state.entities == nil {
		return "waiting_first_status"
	}
	return "idle"
}
