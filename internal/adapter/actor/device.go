package actor

import (
	"context"
	"fmt"
	"time"

	"purair2mqtt/internal/core/domain"
	"purair2mqtt/internal/util/actorutil"
	"purair2mqtt/pkg/airctl"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// DeviceActor owns the appliance status reader and serves status
// requests off the actor goroutine through background tasks.
type DeviceActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	reader   airctl.StatusReader
	timeout  time.Duration
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewDeviceActor(reader airctl.StatusReader, timeout time.Duration, logger *zap.Logger) *DeviceActor {
	act := &DeviceActor{
		reader:   reader,
		timeout:  timeout,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger(domain.ACTOR_ID_DEVICE, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *DeviceActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *DeviceActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("device@starting started")
		if err := state.reader.Open(); err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.reader.Close()
	default:
		state.logger.Debug("device@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *DeviceActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("device@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_DEVICE,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetStatusRequest:
		state.logger.Debug("device@default: GetStatusRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.readStatus),
			mapTaskResult[domain.GetStatusResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetStatusResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(state.timeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingDevice)
	case *actor.Stopping:
		state.reader.Close()
	default:
		state.logger.Debug("device@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *DeviceActor) WaitingDevice(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("device@waiting backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.reader.Close()
	default:
		state.logger.Debug("device@waiting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *DeviceActor) readStatus() (*domain.GetStatusResponse, error) {
	readCtx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	status, err := a.reader.ReadStatus(readCtx)
	if err != nil {
		a.logger.Error("device: status read failed", zap.Error(err))
		return nil, err
	}
	return &domain.GetStatusResponse{
		Status: status,
	}, nil
}

func mapTaskResult[T any](replyTo *actor.PID) func(*T) *backgroundTaskResult {
	return func(value *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *value,
			replyTo: replyTo,
		}
	}
}
