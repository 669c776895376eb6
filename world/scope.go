package world

// Scope returns every object the current command could legally
// reference: inventory, objects in the room, contents of open (or
// transparent) containers present in room or inventory one nesting
// level deep, room-scoped scenery, and world-global scenery. The set
// is recomputed on every call — never cached across turns — and its
// order is stable for a given world state.
//
// In a dark room with no lit light source the player can only
// reference what they carry.
func (w *World) Scope() []*Object {
	var ids []string
	seen := map[string]bool{}
	add := func(id string) {
		if id == Player || seen[id] {
			return
		}
		if _, ok := w.Objects[id]; !ok {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	addWithContents := func(id string) {
		add(id)
		obj := w.Objects[id]
		if obj == nil || !obj.Has(FlagContainer) {
			return
		}
		if !obj.Has(FlagOpen) && !obj.Has(FlagTransparent) {
			return
		}
		for _, child := range obj.Contents {
			add(child)
		}
	}

	// Inventory first, with the contents of open carried containers.
	for _, id := range w.Objects[Player].Contents {
		addWithContents(id)
	}

	room := w.HereRoom()
	if room == nil {
		return w.resolve(ids)
	}

	if room.Dark && !w.LitHere() {
		return w.resolve(ids)
	}

	for _, id := range room.Contents {
		addWithContents(id)
	}
	for _, id := range room.Scenery {
		add(id)
	}
	for _, id := range w.Scenery {
		add(id)
	}
	return w.resolve(ids)
}

func (w *World) resolve(ids []string) []*Object {
	out := make([]*Object, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.Objects[id])
	}
	return out
}

// LitHere reports whether the player's surroundings are lit: either the
// room itself is not dark, or a lit light source is carried or present
// in the room (including inside open containers).
func (w *World) LitHere() bool {
	room := w.HereRoom()
	if room == nil {
		return false
	}
	if !room.Dark {
		return true
	}
	lit := func(id string) bool {
		obj := w.Objects[id]
		return obj != nil && obj.Has(FlagLightSource|FlagLit)
	}
	check := func(ids []string) bool {
		for _, id := range ids {
			if lit(id) {
				return true
			}
			if obj := w.Objects[id]; obj != nil && obj.Has(FlagContainer) &&
				(obj.Has(FlagOpen) || obj.Has(FlagTransparent)) {
				for _, child := range obj.Contents {
					if lit(child) {
						return true
					}
				}
			}
		}
		return false
	}
	return check(w.Objects[Player].Contents) || check(room.Contents)
}
