package component

import (
	"fmt"
	"maps"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/Carmen-Shannon/scion-go/common"
)

// AnimationStatus is the lifecycle state of one animation. Exactly one holds at a time.
type AnimationStatus uint8

const (
	AnimationStopped AnimationStatus = iota
	AnimationRunning
	AnimationLooping
	// AnimationStopping finishes the current cycle then stops.
	AnimationStopping
	// AnimationForceStopped stops on the next status check without finishing the cycle.
	AnimationForceStopped
	// AnimationWaitingStartTime starts once its start instant is reached.
	AnimationWaitingStartTime
)

func (s AnimationStatus) String() string {
	switch s {
	case AnimationStopped:
		return "Stopped"
	case AnimationRunning:
		return "Running"
	case AnimationLooping:
		return "Looping"
	case AnimationStopping:
		return "Stopping"
	case AnimationForceStopped:
		return "ForceStopped"
	case AnimationWaitingStartTime:
		return "WaitingStartTime"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", uint8(s))
	}
}

// Animations is the component holding every named animation of an entity.
type Animations struct {
	animations map[string]*Animation
}

// NewAnimations builds the component from named animations.
func NewAnimations(animations map[string]*Animation) Animations {
	if animations == nil {
		animations = make(map[string]*Animation)
	}
	return Animations{animations: animations}
}

// SingleAnimation builds the component with one animation.
func SingleAnimation(name string, animation *Animation) Animations {
	return Animations{animations: map[string]*Animation{name: animation}}
}

func (a *Animations) run(name string, status AnimationStatus, startAt time.Time) bool {
	anim, ok := a.animations[name]
	if !ok {
		return false
	}
	switch anim.status {
	case AnimationWaitingStartTime, AnimationStopped:
		anim.status = status
		anim.startAt = startAt
		anim.delayPending = false
		return true
	default:
		return false
	}
}

// RunAnimation starts the animation. It returns false when the animation does not exist or is
// already running.
func (a *Animations) RunAnimation(name string) bool {
	return a.run(name, AnimationRunning, time.Time{})
}

// RunAnimationDelayed starts the animation once delay has elapsed. The delay is measured on the
// simulation clock from the next RunEligibleDelayedAnimations call.
func (a *Animations) RunAnimationDelayed(name string, delay time.Duration) bool {
	if !a.run(name, AnimationWaitingStartTime, time.Time{}) {
		return false
	}
	anim := a.animations[name]
	anim.delay, anim.delayPending = delay, true
	return true
}

// RunEligibleDelayedAnimations starts every waiting animation whose start instant is not after now.
// Pending delays are anchored at now first.
func (a *Animations) RunEligibleDelayedAnimations(now time.Time) {
	for _, name := range a.Names() {
		anim := a.animations[name]
		if anim.status != AnimationWaitingStartTime {
			continue
		}
		if anim.delayPending {
			anim.startAt = now.Add(anim.delay)
			anim.delayPending = false
		}
		if !anim.startAt.After(now) {
			a.run(name, AnimationRunning, time.Time{})
		}
	}
}

// LoopAnimation starts the animation in looping mode.
func (a *Animations) LoopAnimation(name string) bool {
	return a.run(name, AnimationLooping, time.Time{})
}

// AnimationRunning reports whether the animation is running, looping or stopping.
func (a *Animations) AnimationRunning(name string) bool {
	anim, ok := a.animations[name]
	if !ok {
		return false
	}
	switch anim.status {
	case AnimationRunning, AnimationLooping, AnimationStopping:
		return true
	default:
		return false
	}
}

// StopAnimation stops a running or looping animation. A forced stop takes effect on the next
// status check, otherwise the current cycle finishes first.
func (a *Animations) StopAnimation(name string, force bool) bool {
	anim, ok := a.animations[name]
	if !ok {
		return false
	}
	return anim.stop(force)
}

// StopAll stops every animation.
func (a *Animations) StopAll(force bool) {
	for _, anim := range a.animations {
		anim.stop(force)
	}
}

// AnyAnimationRunning reports whether an animation is running, waiting, looping or stopping.
func (a *Animations) AnyAnimationRunning() bool {
	for _, anim := range a.animations {
		switch anim.status {
		case AnimationRunning, AnimationWaitingStartTime, AnimationLooping, AnimationStopping:
			return true
		}
	}
	return false
}

// Get returns the named animation.
func (a *Animations) Get(name string) (*Animation, bool) {
	anim, ok := a.animations[name]
	return anim, ok
}

// Add registers or replaces a named animation.
func (a *Animations) Add(name string, animation *Animation) {
	if a.animations == nil {
		a.animations = make(map[string]*Animation)
	}
	a.animations[name] = animation
}

// Names returns the animation names in sorted order.
func (a *Animations) Names() []string {
	return slices.Sorted(maps.Keys(a.animations))
}

// Animation is a set of modifiers sharing one duration and one status.
type Animation struct {
	duration  time.Duration
	modifiers []*AnimationModifier
	status    AnimationStatus
	startAt   time.Time

	delay        time.Duration
	delayPending bool
}

func newAnimation(duration time.Duration, modifiers []*AnimationModifier, status AnimationStatus) *Animation {
	for _, m := range modifiers {
		if duration != 0 {
			m.keyframeDuration = duration / time.Duration(max(m.keyframes, 1))
		}
		m.computeKeyframeStep()
	}
	return &Animation{duration: duration, modifiers: modifiers, status: status}
}

// NewAnimation builds a stopped animation.
func NewAnimation(duration time.Duration, modifiers ...*AnimationModifier) *Animation {
	return newAnimation(duration, modifiers, AnimationStopped)
}

// RunningAnimation builds an animation that starts immediately.
func RunningAnimation(duration time.Duration, modifiers ...*AnimationModifier) *Animation {
	return newAnimation(duration, modifiers, AnimationRunning)
}

// DelayedAnimation builds an animation waiting for startAt.
func DelayedAnimation(duration time.Duration, startAt time.Time, modifiers ...*AnimationModifier) *Animation {
	a := newAnimation(duration, modifiers, AnimationWaitingStartTime)
	a.startAt = startAt
	return a
}

// LoopingAnimation builds an animation that loops until stopped.
func LoopingAnimation(duration time.Duration, modifiers ...*AnimationModifier) *Animation {
	return newAnimation(duration, modifiers, AnimationLooping)
}

// Status returns the current status.
func (a *Animation) Status() AnimationStatus { return a.status }

// Duration returns the total duration of one cycle.
func (a *Animation) Duration() time.Duration { return a.duration }

// Modifiers returns the modifiers in declaration order.
func (a *Animation) Modifiers() []*AnimationModifier { return a.modifiers }

// IsActive reports whether the animation needs executing this tick.
func (a *Animation) IsActive() bool {
	switch a.status {
	case AnimationRunning, AnimationLooping, AnimationStopping, AnimationForceStopped:
		return true
	default:
		return false
	}
}

func (a *Animation) stop(force bool) bool {
	if a.status != AnimationRunning && a.status != AnimationLooping {
		return false
	}
	if force {
		a.status = AnimationForceStopped
	} else {
		a.status = AnimationStopping
	}
	return true
}

// TryUpdateStatus settles the status after modifiers advanced. A forced stop becomes Stopped.
// When every modifier reached its last keyframe they all rewind to 0, and a running or
// stopping animation becomes Stopped while a looping one keeps looping.
//
// Returns:
//   - bool: true if the cycle completed during this check
func (a *Animation) TryUpdateStatus() bool {
	if a.status == AnimationForceStopped {
		a.status = AnimationStopped
		a.rewind(false)
		return false
	}
	for _, m := range a.modifiers {
		if m.currentKeyframe != m.keyframes {
			return false
		}
	}
	a.rewind(true)
	if a.status == AnimationRunning || a.status == AnimationStopping {
		a.status = AnimationStopped
	}
	return true
}

func (a *Animation) rewind(toggleVariant bool) {
	for _, m := range a.modifiers {
		m.currentKeyframe = 0
		m.elapsed = 0
		m.colorStepReady = false
		if toggleVariant {
			m.variant = m.hasVariant && !m.variant
		}
	}
}

// ModifierKind discriminates the animation modifier variants.
type ModifierKind uint8

const (
	ModifierTransform ModifierKind = iota
	ModifierSprite
	ModifierColor
	ModifierBlink
	ModifierText
)

// AnimationModifier mutates one aspect of the entity over a number of keyframes.
// The per-keyframe step is computed once when the animation is built.
type AnimationModifier struct {
	kind            ModifierKind
	keyframes       int
	currentKeyframe int

	keyframeDuration time.Duration
	elapsed          time.Duration

	vector, vectorStep     Vector
	scale, scaleStep       float32
	rotation, rotationStep float32

	tiles, variantTiles []int
	endTile             int
	hasVariant, variant bool

	target         common.Color
	colorStep      [3]int16
	alphaStep      float32
	colorStepReady bool

	content string
}

// NewTransformModifier moves, scales and rotates the entity by the given totals over keyframes steps.
func NewTransformModifier(keyframes int, vector Vector, scale, rotation float32) *AnimationModifier {
	return &AnimationModifier{kind: ModifierTransform, keyframes: keyframes, vector: vector, scale: scale, rotation: rotation}
}

// NewSpriteModifier walks through tiles and shows endTile once a non-looping cycle ends.
func NewSpriteModifier(tiles []int, endTile int) *AnimationModifier {
	if len(tiles) == 0 {
		panic("sprite modifier requires at least one tile")
	}
	return &AnimationModifier{kind: ModifierSprite, keyframes: len(tiles) - 1, tiles: tiles, endTile: endTile}
}

// NewSpriteModifierWithVariant alternates between tiles and variantTiles on every cycle.
func NewSpriteModifierWithVariant(tiles, variantTiles []int, endTile int) *AnimationModifier {
	if len(tiles) != len(variantTiles) {
		panic(fmt.Sprintf("sprite variant has %d tiles, expected %d", len(variantTiles), len(tiles)))
	}
	m := NewSpriteModifier(tiles, endTile)
	m.variantTiles = variantTiles
	m.hasVariant = true
	return m
}

// NewColorModifier fades a color material towards target.
func NewColorModifier(keyframes int, target common.Color) *AnimationModifier {
	return &AnimationModifier{kind: ModifierColor, keyframes: keyframes, target: target}
}

// NewBlinkModifier toggles visibility blinks times.
func NewBlinkModifier(blinks int) *AnimationModifier {
	return &AnimationModifier{kind: ModifierBlink, keyframes: blinks * 2}
}

// NewTextModifier reveals content one character per keyframe.
func NewTextModifier(content string) *AnimationModifier {
	return &AnimationModifier{kind: ModifierText, keyframes: utf8.RuneCountInString(content), content: content}
}

func (m *AnimationModifier) computeKeyframeStep() {
	if m.kind != ModifierTransform || m.keyframes == 0 {
		return
	}
	n := float32(m.keyframes)
	m.vectorStep = m.vector.Scale(1 / n)
	m.scaleStep = m.scale / n
	m.rotationStep = m.rotation / n
}

// Kind returns the modifier variant.
func (m *AnimationModifier) Kind() ModifierKind { return m.kind }

// Keyframes returns the number of keyframes of one cycle.
func (m *AnimationModifier) Keyframes() int { return m.keyframes }

// CurrentKeyframe returns how many keyframes of the current cycle were applied.
func (m *AnimationModifier) CurrentKeyframe() int { return m.currentKeyframe }

// KeyframeDuration returns the duration of one keyframe.
func (m *AnimationModifier) KeyframeDuration() time.Duration { return m.keyframeDuration }

// IsFirstFrame reports whether no keyframe of the current cycle was applied yet.
func (m *AnimationModifier) IsFirstFrame() bool { return m.currentKeyframe == 0 }

// WillBeLastKeyframe reports whether applying added keyframes completes the cycle.
func (m *AnimationModifier) WillBeLastKeyframe(added int) bool {
	return m.currentKeyframe+added >= m.keyframes
}

// Advance accumulates delta and consumes the keyframes that became due, at most up to the end
// of the cycle. A zero keyframe duration consumes the whole remaining cycle at once.
//
// Returns:
//   - int: the number of keyframes to apply
func (m *AnimationModifier) Advance(delta time.Duration) int {
	remaining := m.keyframes - m.currentKeyframe
	if remaining <= 0 {
		return 0
	}
	if m.keyframeDuration <= 0 {
		m.currentKeyframe = m.keyframes
		return remaining
	}
	m.elapsed += delta
	due := min(int(m.elapsed/m.keyframeDuration), remaining)
	m.elapsed -= time.Duration(due) * m.keyframeDuration
	m.currentKeyframe += due
	return due
}

// TransformStep returns the translation, scale and rotation applied per keyframe.
func (m *AnimationModifier) TransformStep() (Vector, float32, float32) {
	return m.vectorStep, m.scaleStep, m.rotationStep
}

// CurrentTile returns the tile to show for the current keyframe.
func (m *AnimationModifier) CurrentTile() int {
	tiles := m.tiles
	if m.variant {
		tiles = m.variantTiles
	}
	return tiles[min(m.currentKeyframe, len(tiles)-1)]
}

// EndTile returns the tile shown when a non-looping cycle ends.
func (m *AnimationModifier) EndTile() int { return m.endTile }

// ComputeColorStep derives the per-keyframe color delta from the color at the start of the cycle.
func (m *AnimationModifier) ComputeColorStep(initial common.Color) {
	if m.kind != ModifierColor || m.keyframes == 0 {
		return
	}
	n := int16(m.keyframes)
	m.colorStep = [3]int16{
		(int16(m.target.R) - int16(initial.R)) / n,
		(int16(m.target.G) - int16(initial.G)) / n,
		(int16(m.target.B) - int16(initial.B)) / n,
	}
	m.alphaStep = (m.target.A - initial.A) / float32(m.keyframes)
	m.colorStepReady = true
}

// ColorStepReady reports whether the color delta was computed for the current cycle.
func (m *AnimationModifier) ColorStepReady() bool { return m.colorStepReady }

// ApplyColor returns c advanced by keyframes steps; the last keyframe lands exactly on the target.
func (m *AnimationModifier) ApplyColor(c common.Color, keyframes int) common.Color {
	if m.currentKeyframe >= m.keyframes {
		return m.target
	}
	k := int16(keyframes)
	return common.Color{
		R: clampChannel(int16(c.R) + m.colorStep[0]*k),
		G: clampChannel(int16(c.G) + m.colorStep[1]*k),
		B: clampChannel(int16(c.B) + m.colorStep[2]*k),
		A: min(max(c.A+m.alphaStep*float32(keyframes), 0), 1),
	}
}

// Target returns the final color of a color modifier.
func (m *AnimationModifier) Target() common.Color { return m.target }

// RevealedText returns the prefix of the content visible at the current keyframe.
func (m *AnimationModifier) RevealedText() string {
	runes := []rune(m.content)
	return string(runes[:min(m.currentKeyframe, len(runes))])
}

func clampChannel(v int16) uint8 {
	return uint8(min(max(v, 0), 255))
}
