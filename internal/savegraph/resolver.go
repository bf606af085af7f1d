package savegraph

// Resolver follows named object references between indexed entities. Every
// lookup reports absence explicitly; callers decide whether a miss degrades
// the record or skips it.
type Resolver struct {
	ix *Index
}

// NewResolver creates a resolver over a built index.
func NewResolver(ix *Index) *Resolver {
	return &Resolver{ix: ix}
}

// Entity looks up an entity by id.
func (r *Resolver) Entity(id string) (*Entity, bool) {
	return r.ix.Entity(id)
}

// Deref resolves a reference to the entity it points at directly.
func (r *Resolver) Deref(ref Ref) (*Entity, bool) {
	if ref.PathName == "" {
		return nil, false
	}
	return r.ix.Entity(ref.PathName)
}

// Owner resolves a reference that points at a child component (for example
// "...Build_TrainDockingStation_C_214.inventory") to the owning parent
// entity, by stripping the last "."-delimited segment before the lookup.
func (r *Resolver) Owner(ref Ref) (*Entity, bool) {
	if ref.PathName == "" {
		return nil, false
	}
	return r.ix.Entity(ParentPath(ref.PathName))
}

// ChildrenOf returns all entities of the given type whose ParentActorName is
// parentID, in source order. Used to find the platform-connection children of
// a station actor.
func (r *Resolver) ChildrenOf(typePath, parentID string) []*Entity {
	var children []*Entity
	for _, e := range r.ix.OfType(typePath) {
		if e.ParentActorName == parentID {
			children = append(children, e)
		}
	}
	return children
}
