package drake

// store owns the dense pool of drawable objects: a growable backing slice
// plus an id→slot map for O(1) lookup, insertion, and removal. Removal is
// swap-with-last, which remaps the moved object's id so no other live id is
// ever invalidated. Ids are monotonic from 1 and never reused in a session.
//
// Every structural mutation and every ordering-relevant attribute change
// sets needsSort; the renderer clears it only after a full resort and index
// remap.
type store struct {
	objects   []Object
	idToIndex map[uint32]int
	nextID    uint32

	needsSort bool
}

func newStore() *store {
	return &store{
		objects:   make([]Object, 0, 256),
		idToIndex: make(map[uint32]int, 256),
		nextID:    1,
	}
}

// add assigns the next id, appends the object, and marks the pool dirty.
func (s *store) add(obj Object) uint32 {
	obj.id = s.nextID
	s.nextID++

	s.idToIndex[obj.id] = len(s.objects)
	s.objects = append(s.objects, obj)
	s.needsSort = true

	return obj.id
}

// find returns a pointer to the live object with the given id, or nil.
// The pointer is invalidated by the next add, remove, or resort.
func (s *store) find(id uint32) *Object {
	idx, ok := s.idToIndex[id]
	if !ok {
		return nil
	}
	return &s.objects[idx]
}

// remove deletes the object with the given id via swap-with-last. No-op if
// the id is unknown.
func (s *store) remove(id uint32) {
	idx, ok := s.idToIndex[id]
	if !ok {
		return
	}

	last := len(s.objects) - 1
	if idx < last {
		s.objects[idx] = s.objects[last]
		s.idToIndex[s.objects[idx].id] = idx
	}
	s.objects = s.objects[:last]
	delete(s.idToIndex, id)
	s.needsSort = true
}

// clear drops every object. Ids are not recycled.
func (s *store) clear() {
	s.objects = s.objects[:0]
	clear(s.idToIndex)
	s.needsSort = true
}

// len returns the number of live objects.
func (s *store) len() int {
	return len(s.objects)
}

// rebuildIndex rewrites the id→slot map from the current slice order.
// Called after every resort.
func (s *store) rebuildIndex() {
	for i := range s.objects {
		s.idToIndex[s.objects[i].id] = i
	}
}
