package engine

import "github.com/google/uuid"

// GameObjectRef is a serializable reference to a GameObject by its persistent ID.
// Use this in scripts that point at other objects in the scene file.
//
// Example:
//
//	type Door struct {
//	    engine.BaseComponent
//	    Prompt engine.GameObjectRef
//	}
//
//	func (d *Door) Start() {
//	    if prompt := d.Prompt.Get(d.GetGameObject().Scene); prompt != nil {
//	        prompt.SetActive(false)
//	    }
//	}
type GameObjectRef struct {
	ID uuid.UUID // uuid.Nil = none
}

// RefTo returns a reference to g, or an empty reference for nil.
func RefTo(g *GameObject) GameObjectRef {
	var r GameObjectRef
	r.Set(g)
	return r
}

// ParseRef parses a reference from its string form. Empty or malformed input
// yields an empty reference.
func ParseRef(s string) GameObjectRef {
	id, err := uuid.Parse(s)
	if err != nil {
		return GameObjectRef{}
	}
	return GameObjectRef{ID: id}
}

// Get resolves the reference to the actual GameObject.
// Returns nil if the reference is empty or if the GameObject doesn't exist.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.ID == uuid.Nil || scene == nil {
		return nil
	}
	return scene.FindByID(r.ID)
}

// IsValid reports whether the reference points to something.
// It doesn't check if the GameObject actually exists in the scene.
func (r GameObjectRef) IsValid() bool {
	return r.ID != uuid.Nil
}

// Set sets the reference to point to the given GameObject.
// Pass nil to clear the reference.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.ID = uuid.Nil
	} else {
		r.ID = g.ID
	}
}

func (r *GameObjectRef) Clear() {
	r.ID = uuid.Nil
}

func (r GameObjectRef) String() string {
	if !r.IsValid() {
		return ""
	}
	return r.ID.String()
}
