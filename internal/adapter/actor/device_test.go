package actor

import (
	"testing"
	"time"

	"purair2mqtt/internal/core/domain"
	"purair2mqtt/pkg/airctl"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDeviceActorGetStatus(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	logCfg := zap.NewDevelopmentConfig()
	logger := zap.Must(logCfg.Build())

	reader, err := airctl.CreateTestStatusReader()
	assert.NoError(t, err)

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewDeviceActor(reader, 1*time.Second, logger)
	})
	pid, err := context.SpawnNamed(props, "device")
	if err != nil {
		t.Error(err)
		return
	}

	res, err := context.RequestFuture(pid, domain.GetStatusRequest{}, 5*time.Second).Result()
	assert.NoError(t, err)

	statusResp, ok := res.(domain.GetStatusResponse)
	assert.True(t, ok)
	assert.False(t, statusResp.HasResponseError())
	assert.Equal(t, "9f28e1a047c2", statusResp.Status["DeviceId"])
	assert.True(t, statusResp.Status.Has("pm25"))

	context.Stop(pid)

	as.Shutdown()
}
