package system

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
)

// AnimationExecutorSystem starts eligible delayed animations, advances every active animation
// by the tick delta, applies the keyframes that became due and settles the animation status.
// A modifier whose target component is missing is a fatal error.
func AnimationExecutorSystem(data *gamedata.GameData) {
	tm := data.Time()
	now, delta := tm.Now(), tm.DeltaDuration()

	ecs.Each1(data.World, func(e ecs.Entity, anims *component.Animations) {
		anims.RunEligibleDelayedAnimations(now)
		for _, name := range anims.Names() {
			anim, _ := anims.Get(name)
			if !anim.IsActive() {
				continue
			}
			if anim.Status() != component.AnimationForceStopped {
				for _, m := range anim.Modifiers() {
					applyModifier(data.World, e, name, anim, m, delta)
				}
			}
			anim.TryUpdateStatus()
		}
	})
}

func applyModifier(w *ecs.World, e ecs.Entity, name string, anim *component.Animation, m *component.AnimationModifier, delta time.Duration) {
	first := m.IsFirstFrame()
	if m.Kind() == component.ModifierColor && !m.ColorStepReady() {
		mat := mustComponent[component.Material](w, e, name)
		m.ComputeColorStep(mat.Color())
	}

	k := m.Advance(delta)
	switch m.Kind() {
	case component.ModifierTransform:
		if k == 0 {
			return
		}
		t := mustComponent[component.Transform](w, e, name)
		vec, scale, rotation := m.TransformStep()
		t.AppendVector(vec.Scale(float32(k)))
		if scale != 0 {
			t.SetScale(t.Scale() + scale*float32(k))
		}
		if rotation != 0 {
			t.AppendAngle(rotation * float32(k))
		}
	case component.ModifierSprite:
		if k == 0 && !first {
			return
		}
		s := mustComponent[component.Sprite](w, e, name)
		if m.CurrentKeyframe() == m.Keyframes() && anim.Status() != component.AnimationLooping {
			s.SetTileNumber(m.EndTile())
			return
		}
		s.SetTileNumber(m.CurrentTile())
	case component.ModifierColor:
		if k == 0 {
			return
		}
		mat := mustComponent[component.Material](w, e, name)
		mat.SetColor(m.ApplyColor(mat.Color(), k))
	case component.ModifierBlink:
		if k == 0 {
			return
		}
		if m.CurrentKeyframe()%2 == 1 {
			_ = ecs.Add(w, e, component.Hide{})
		} else {
			ecs.Remove[component.Hide](w, e)
		}
	case component.ModifierText:
		if k == 0 && !first {
			return
		}
		mustComponent[component.UiText](w, e, name).SetText(m.RevealedText())
	}
}

func mustComponent[T any](w *ecs.World, e ecs.Entity, animation string) *T {
	c, ok := ecs.Get[T](w, e)
	if !ok {
		var zero T
		panic(fmt.Sprintf("animation %q on %v requires a %T component", animation, e, zero))
	}
	return c
}
