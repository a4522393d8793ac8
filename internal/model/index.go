package model

// Index resolves weak references by id. Build it once per parsed model.
// When ids collide within a collection the last occurrence wins.
type Index struct {
	entities     map[string]*Entity
	services     map[string]*Service
	aliases      map[string]*Alias
	associations map[string]*Association
}

// NewIndex builds lookup maps over d. d must not be mutated while the index is in use.
func NewIndex(d *Data) *Index {
	idx := &Index{
		entities:     make(map[string]*Entity, len(d.Entities)),
		services:     make(map[string]*Service, len(d.Services)),
		aliases:      make(map[string]*Alias, len(d.Aliases)),
		associations: make(map[string]*Association, len(d.Associations)),
	}
	for i := range d.Entities {
		idx.entities[d.Entities[i].ID] = &d.Entities[i]
	}
	for i := range d.Services {
		idx.services[d.Services[i].ID] = &d.Services[i]
	}
	for i := range d.Aliases {
		idx.aliases[d.Aliases[i].ID] = &d.Aliases[i]
	}
	for i := range d.Associations {
		idx.associations[d.Associations[i].ID] = &d.Associations[i]
	}
	return idx
}

// Entity returns the entity with the given id.
func (idx *Index) Entity(id string) (*Entity, bool) {
	if id == "" {
		return nil, false
	}
	e, ok := idx.entities[id]
	return e, ok
}

// Service returns the service with the given id.
func (idx *Index) Service(id string) (*Service, bool) {
	if id == "" {
		return nil, false
	}
	s, ok := idx.services[id]
	return s, ok
}

// Alias returns the alias with the given id.
func (idx *Index) Alias(id string) (*Alias, bool) {
	if id == "" {
		return nil, false
	}
	a, ok := idx.aliases[id]
	return a, ok
}

// Association returns the association with the given id.
func (idx *Index) Association(id string) (*Association, bool) {
	if id == "" {
		return nil, false
	}
	a, ok := idx.associations[id]
	return a, ok
}

// Resolves reports whether a shape's model reference points at an element of the right kind.
func (idx *Index) Resolves(s Shape) bool {
	switch s.Type {
	case KindEntity:
		_, ok := idx.Entity(s.ModelID)
		return ok
	case KindService:
		_, ok := idx.Service(s.ModelID)
		return ok
	case KindAlias:
		_, ok := idx.Alias(s.ModelID)
		return ok
	}
	return false
}
