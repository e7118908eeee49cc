package scheduler

import (
	"testing"

	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/stretchr/testify/assert"
)

func firstSystem(data *gamedata.GameData) {
	data.Events().Publish("order", "first")
}

func secondSystem(data *gamedata.GameData) {
	data.Events().Publish("order", "second")
}

func TestExecuteRunsInRegistrationOrder(t *testing.T) {
	s := New()
	s.Add(secondSystem, firstSystem)
	s.Add(secondSystem)

	data := gamedata.New(10, 10, 1)
	s.Execute(data)

	assert.Equal(t, []any{"second", "first", "second"}, data.Events().Messages("order"))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "scheduler.secondSystem", s.Names()[0])
	assert.Empty(t, s.Current())
}

func brokenSystem(*gamedata.GameData) {
	panic("boom")
}

func TestPanickingSystemAbortsFrame(t *testing.T) {
	s := New()
	s.Add(firstSystem, brokenSystem, secondSystem)

	data := gamedata.New(10, 10, 1)
	assert.PanicsWithValue(t, "system scheduler.brokenSystem: boom", func() { s.Execute(data) })
	assert.Equal(t, []any{"first"}, data.Events().Messages("order"))
}

func TestNilSystemRejected(t *testing.T) {
	assert.Panics(t, func() { New().Add(nil) })
}
