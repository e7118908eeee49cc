package premade

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine"
	"github.com/Carmen-Shannon/scion-go/engine/camera"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/config"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/limiter"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func windowless() config.Config {
	cfg := config.Default()
	cfg.Window = nil
	cfg.Audio.Enabled = false
	return cfg
}

func TestPrepareSpawnsCamera(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	p := NewCameraPackage(camera.WithVelocity(2, 2))
	p.Prepare(data)

	e, ok := p.Entity()
	require.True(t, ok)
	c := ecs.MustGet[camera.Camera](data.World, e)
	assert.Equal(t, float32(800), c.Width())
	assert.True(t, ecs.HasResource[camera.ControllerConfig](data.Resources))
	assert.Len(t, p.Load(), 1)
}

func TestPrepareKeepsExistingCamera(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	data.World.Spawn(camera.NewCamera(100, 100), component.FromXY(0, 0))

	p := NewCameraPackage()
	p.Prepare(data)

	_, ok := p.Entity()
	assert.False(t, ok)
	assert.Equal(t, 1, data.World.EntityCount())
}

func TestPackagePansCameraInEngine(t *testing.T) {
	p := NewCameraPackage(camera.WithVelocity(7, 7))
	var eng engine.Engine
	eng = engine.NewEngine(
		engine.WithConfig(windowless()),
		engine.WithClock(limiter.NewMockClock(time.Unix(1000, 0))),
		engine.WithLogger(zap.NewNop()),
		engine.WithAudio(nil),
		engine.WithPackage(p),
		engine.WithSystem(func(data *gamedata.GameData) {
			data.Inputs().ApplyKey(common.KeyRight, resources.Pressed)
			eng.Quit()
		}),
	)
	eng.Run()

	e, ok := p.Entity()
	require.True(t, ok)
	tr := ecs.MustGet[component.Transform](eng.Data().World, e)
	assert.Equal(t, component.Vector{X: 7}, tr.Translation())
}
