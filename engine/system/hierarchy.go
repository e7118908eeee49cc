package system

import (
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
)

// HierarchySystem resolves every global transform through the Parent chains, roots first, and
// tags each entity whose global transform changed with component.Dirty so the pre-renderer
// recomputes its uniform. Entities whose Parent changed are resolved again.
func HierarchySystem(data *gamedata.GameData) {
	w := data.World
	for _, e := range w.TakeRelinked() {
		if t, ok := ecs.Get[component.Transform](w, e); ok {
			t.MarkDirty()
		}
	}
	ecs.Each1(w, func(e ecs.Entity, t *component.Transform) {
		if p, ok := ecs.Get[ecs.Parent](w, e); ok && ecs.Has[component.Transform](w, p.Entity) {
			return
		}
		resolve(w, e, t, nil, false)
	})
}

func resolve(w *ecs.World, e ecs.Entity, t, parent *component.Transform, parentChanged bool) {
	changed := t.IsDirty() || parentChanged
	if changed {
		if parent == nil {
			t.ResolveRoot()
		} else {
			t.ResolveFromParent(parent)
		}
		if !ecs.Has[component.Dirty](w, e) {
			_ = ecs.Add(w, e, component.Dirty{})
		}
	}

	children, ok := ecs.Get[ecs.Children](w, e)
	if !ok {
		return
	}
	for _, child := range children.Entities() {
		ct, ok := ecs.Get[component.Transform](w, child)
		if !ok {
			continue
		}
		resolve(w, child, ct, t, changed)
	}
}
