package camera

import (
	"testing"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"github.com/stretchr/testify/assert"
)

func TestProjectionMapsCornersToClipSpace(t *testing.T) {
	c := NewCamera(800, 600)
	p := c.Projection()

	// top-left corner
	x := p[0]*0 + p[12]
	y := p[5]*0 + p[13]
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)

	// bottom-right corner
	x = p[0]*800 + p[12]
	y = p[5]*600 + p[13]
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)
}

func TestModelMatrixFollowsCamera(t *testing.T) {
	cam := component.FromXY(100, 50)
	cam.ResolveRoot()
	tr := component.FromXYZ(120, 70, 3)
	tr.ResolveRoot()

	m := ModelMatrix(&tr, &cam, component.Vector{}, false)
	assert.InDelta(t, 20, m[12], 1e-5)
	assert.InDelta(t, 20, m[13], 1e-5)
	assert.InDelta(t, 3, m[14], 1e-5)

	ui := ModelMatrix(&tr, &cam, component.Vector{}, true)
	assert.InDelta(t, 120, ui[12], 1e-5)
	assert.InDelta(t, 0.003, ui[14], 1e-6)
}

func TestControllerSystemPansCamera(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	ecs.InsertResource(data.Resources, NewControllerConfig(WithVelocity(3, 4)))
	e := data.World.Spawn(NewCamera(800, 600), component.FromXY(0, 0))

	ControllerSystem(data)
	tr := ecs.MustGet[component.Transform](data.World, e)
	assert.Equal(t, component.Vector{}, tr.Translation())

	data.Inputs().ApplyKey(common.KeyRight, resources.Pressed)
	data.Inputs().ApplyKey(common.KeyUp, resources.Pressed)
	ControllerSystem(data)
	assert.Equal(t, component.Vector{X: 3, Y: -4}, tr.Translation())
}

func TestFitWindowSystemFollowsResize(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	e := data.World.Spawn(NewCamera(800, 600), component.FromXY(0, 0))

	data.Window().SetCurrentDimensions(640, 480)
	data.Window().SetDPI(2)
	FitWindowSystem(data)

	c := ecs.MustGet[Camera](data.World, e)
	assert.Equal(t, float32(640), c.Width())
	assert.Equal(t, float32(480), c.Height())
	assert.Equal(t, 2.0, c.DPI())
}
