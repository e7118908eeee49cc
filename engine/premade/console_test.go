package premade

import (
	"testing"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOpensAndCloses(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	p := NewConsolePackage()
	p.Prepare(data)
	require.Len(t, p.Load(), 1)
	state := ecs.MustGetResource[ConsoleState](data.Resources)

	p.ToggleSystem(data)
	assert.False(t, state.Displayed())

	data.Inputs().ApplyKey(common.KeyF12, resources.Pressed)
	p.ToggleSystem(data)
	require.True(t, state.Displayed())
	root, ok := state.Root()
	require.True(t, ok)
	children := ecs.MustGet[ecs.Children](data.World, root)
	assert.Equal(t, 2, children.Len())
	assert.Len(t, ecs.Query(data.World, ecs.With[component.UiImage]()), 2)

	// Still held: the overlay is not spawned twice.
	data.Inputs().ResetInputs()
	p.ToggleSystem(data)
	assert.Equal(t, 3, data.World.EntityCount())

	data.Inputs().ApplyKey(common.KeyF12, resources.Released)
	data.Inputs().ResetInputs()
	data.Inputs().ApplyKey(common.KeyEsc, resources.Pressed)
	p.ToggleSystem(data)
	assert.False(t, state.Displayed())
	assert.Equal(t, 0, data.World.EntityCount())
}
