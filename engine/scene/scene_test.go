package scene

import (
	"testing"

	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingScene struct {
	BaseScene
	name  string
	calls *[]string
}

func (s *recordingScene) OnStart(*gamedata.GameData)      { *s.calls = append(*s.calls, s.name+".start") }
func (s *recordingScene) OnUpdate(*gamedata.GameData)     { *s.calls = append(*s.calls, s.name+".update") }
func (s *recordingScene) OnFixedUpdate(*gamedata.GameData) { *s.calls = append(*s.calls, s.name+".fixed") }

func TestMachineStartsBeforeFirstAction(t *testing.T) {
	var calls []string
	m := NewMachine(WithScene(&recordingScene{name: "a", calls: &calls}), WithLogger(zap.NewNop()))
	data := gamedata.New(10, 10, 1)

	m.Apply(ActionUpdate, data)
	m.Apply(ActionLateUpdate, data)
	m.Apply(ActionFixedUpdate, data)
	m.Apply(ActionEndFrame, data)

	assert.Equal(t, []string{"a.start", "a.update", "a.fixed"}, calls)
	assert.True(t, m.Started())
}

func TestSwitchStartsNewSceneWithoutEndingOld(t *testing.T) {
	var calls []string
	m := NewMachine(WithScene(&recordingScene{name: "a", calls: &calls}), WithLogger(zap.NewNop()))
	data := gamedata.New(10, 10, 1)
	ctrl := &Controller{}
	ecs.InsertResource(data.Resources, ctrl)

	m.Apply(ActionStart, data)
	ctrl.SwitchTo(&recordingScene{name: "b", calls: &calls})
	assert.True(t, ctrl.Pending())

	m.Apply(ActionUpdate, data)
	assert.False(t, ctrl.Pending())
	assert.Equal(t, []string{"a.start", "b.start", "b.update"}, calls)
}

func TestMachineWithoutScene(t *testing.T) {
	m := NewMachine()
	data := gamedata.New(10, 10, 1)
	assert.NotPanics(t, func() { m.Apply(ActionUpdate, data) })
	assert.Nil(t, m.Current())
	assert.Equal(t, "FixedUpdate", ActionFixedUpdate.String())
}
