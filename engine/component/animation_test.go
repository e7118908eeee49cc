package component

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyframeStepIsDividedOnce(t *testing.T) {
	anim := NewAnimation(time.Second, NewTransformModifier(2, Vector{X: 2, Y: 4}, 4, 1))
	m := anim.Modifiers()[0]

	assert.Equal(t, 500*time.Millisecond, m.KeyframeDuration())
	vector, scale, rotation := m.TransformStep()
	assert.Equal(t, Vector{X: 1, Y: 2}, vector)
	assert.Equal(t, float32(2), scale)
	assert.Equal(t, float32(0.5), rotation)
}

func TestRunAnimationIsIdempotent(t *testing.T) {
	a := SingleAnimation("move", NewAnimation(time.Second, NewTransformModifier(2, Vector{X: 10}, 0, 0)))

	assert.True(t, a.RunAnimation("move"))
	anim, _ := a.Get("move")
	assert.Equal(t, AnimationRunning, anim.Status())
	assert.False(t, a.RunAnimation("move"))
	assert.False(t, a.RunAnimation("missing"))
	assert.False(t, a.LoopAnimation("move"))
}

func TestRunAnimationFromWaitingStartTime(t *testing.T) {
	a := SingleAnimation("fade", DelayedAnimation(time.Second, time.Now().Add(time.Hour)))
	assert.True(t, a.AnyAnimationRunning())
	assert.False(t, a.AnimationRunning("fade"))
	assert.True(t, a.RunAnimation("fade"))
	assert.True(t, a.AnimationRunning("fade"))
}

func TestRunEligibleDelayedAnimations(t *testing.T) {
	a := SingleAnimation("later", NewAnimation(time.Second))
	require.True(t, a.RunAnimationDelayed("later", time.Minute))

	a.RunEligibleDelayedAnimations(time.Now())
	anim, _ := a.Get("later")
	assert.Equal(t, AnimationWaitingStartTime, anim.Status())

	a.RunEligibleDelayedAnimations(time.Now().Add(2 * time.Minute))
	assert.Equal(t, AnimationRunning, anim.Status())
}

func TestDelayIsAnchoredAtFirstCheck(t *testing.T) {
	start := time.Unix(1000, 0)
	a := SingleAnimation("later", NewAnimation(time.Second))
	require.True(t, a.RunAnimationDelayed("later", time.Second))
	anim, _ := a.Get("later")

	a.RunEligibleDelayedAnimations(start)
	a.RunEligibleDelayedAnimations(start.Add(999 * time.Millisecond))
	assert.Equal(t, AnimationWaitingStartTime, anim.Status())

	a.RunEligibleDelayedAnimations(start.Add(time.Second))
	assert.Equal(t, AnimationRunning, anim.Status())
}

func TestCompletedCycleStopsAndRewinds(t *testing.T) {
	for _, status := range []AnimationStatus{AnimationRunning, AnimationStopping} {
		anim := NewAnimation(time.Second, NewTransformModifier(2, Vector{X: 10}, 0, 0), NewBlinkModifier(1))
		anim.status = status
		for _, m := range anim.Modifiers() {
			m.currentKeyframe = m.Keyframes()
		}

		assert.True(t, anim.TryUpdateStatus())
		assert.Equal(t, AnimationStopped, anim.Status())
		for _, m := range anim.Modifiers() {
			assert.Equal(t, 0, m.CurrentKeyframe())
		}
	}
}

func TestLoopingCycleKeepsLooping(t *testing.T) {
	anim := LoopingAnimation(time.Second, NewTransformModifier(1, Vector{X: 1}, 0, 0))
	anim.Modifiers()[0].currentKeyframe = 1
	assert.True(t, anim.TryUpdateStatus())
	assert.Equal(t, AnimationLooping, anim.Status())
	assert.Equal(t, 0, anim.Modifiers()[0].CurrentKeyframe())
}

func TestIncompleteCycleKeepsStatus(t *testing.T) {
	anim := RunningAnimation(time.Second, NewTransformModifier(2, Vector{X: 1}, 0, 0))
	anim.Modifiers()[0].currentKeyframe = 1
	assert.False(t, anim.TryUpdateStatus())
	assert.Equal(t, AnimationRunning, anim.Status())
}

func TestStopAnimation(t *testing.T) {
	a := NewAnimations(map[string]*Animation{
		"soft": RunningAnimation(time.Second),
		"hard": LoopingAnimation(time.Second),
		"idle": NewAnimation(time.Second),
	})

	assert.True(t, a.StopAnimation("soft", false))
	assert.True(t, a.StopAnimation("hard", true))
	assert.False(t, a.StopAnimation("idle", true))
	assert.False(t, a.StopAnimation("missing", true))

	soft, _ := a.Get("soft")
	hard, _ := a.Get("hard")
	assert.Equal(t, AnimationStopping, soft.Status())
	assert.Equal(t, AnimationForceStopped, hard.Status())

	hard.TryUpdateStatus()
	assert.Equal(t, AnimationStopped, hard.Status())
	assert.True(t, a.AnyAnimationRunning())

	a.StopAll(true)
	soft.TryUpdateStatus()
	assert.False(t, a.AnyAnimationRunning())
}

func TestAdvanceConsumesDueKeyframes(t *testing.T) {
	anim := RunningAnimation(4*time.Second, NewTransformModifier(4, Vector{X: 4}, 0, 0))
	m := anim.Modifiers()[0]

	assert.Equal(t, 0, m.Advance(500*time.Millisecond))
	assert.Equal(t, 2, m.Advance(1500*time.Millisecond))
	assert.Equal(t, 2, m.Advance(time.Hour))
	assert.Equal(t, 0, m.Advance(time.Second))
	assert.Equal(t, 4, m.CurrentKeyframe())
}

func TestZeroDurationAppliesWholeCycle(t *testing.T) {
	anim := RunningAnimation(0, NewTransformModifier(3, Vector{X: 3}, 0, 0))
	m := anim.Modifiers()[0]
	assert.Equal(t, 3, m.Advance(0))
	vector, _, _ := m.TransformStep()
	assert.Equal(t, float32(1), vector.X)
}

func TestColorModifierLandsOnTarget(t *testing.T) {
	target := common.NewColor(100, 0, 0)
	anim := RunningAnimation(3*time.Second, NewColorModifier(3, target))
	m := anim.Modifiers()[0]

	c := common.NewColor(0, 0, 0)
	m.ComputeColorStep(c)
	require.True(t, m.ColorStepReady())

	m.Advance(time.Second)
	c = m.ApplyColor(c, 1)
	assert.Equal(t, uint8(33), c.R)

	m.Advance(2 * time.Second)
	c = m.ApplyColor(c, 2)
	assert.Equal(t, target, c)
}

func TestSpriteAndTextModifiers(t *testing.T) {
	sprite := NewSpriteModifierWithVariant([]int{1, 2, 3}, []int{4, 5, 6}, 9)
	assert.Equal(t, 2, sprite.Keyframes())
	assert.Equal(t, 1, sprite.CurrentTile())
	anim := LoopingAnimation(2*time.Second, sprite)
	sprite.Advance(2 * time.Second)
	assert.Equal(t, 3, sprite.CurrentTile())
	anim.TryUpdateStatus()
	assert.Equal(t, 4, sprite.CurrentTile())

	assert.Panics(t, func() { NewSpriteModifierWithVariant([]int{1}, []int{1, 2}, 0) })

	text := NewTextModifier("héllo")
	RunningAnimation(5*time.Second, text)
	assert.Equal(t, 5, text.Keyframes())
	text.Advance(2 * time.Second)
	assert.Equal(t, "hé", text.RevealedText())
}
