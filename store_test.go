package drake

import (
	"math/rand/v2"
	"testing"
)

func addRect(s *store, z int) uint32 {
	return s.add(Object{Shape: RectShape{}, Visible: true, ZIndex: z})
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := newStore()
	for want := uint32(1); want <= 5; want++ {
		if got := addRect(s, 0); got != want {
			t.Fatalf("add returned id %d, want %d", got, want)
		}
	}
	if s.len() != 5 {
		t.Errorf("len = %d, want 5", s.len())
	}
}

func TestFindReturnsAddedObject(t *testing.T) {
	s := newStore()
	id := s.add(Object{Shape: RectShape{}, Visible: true, ZIndex: 7})

	obj := s.find(id)
	if obj == nil {
		t.Fatal("find returned nil for live id")
	}
	if obj.ID() != id {
		t.Errorf("ID = %d, want %d", obj.ID(), id)
	}
	if obj.ZIndex != 7 {
		t.Errorf("ZIndex = %d, want 7", obj.ZIndex)
	}
}

func TestFindUnknownIDReturnsNil(t *testing.T) {
	s := newStore()
	addRect(s, 0)
	if s.find(999) != nil {
		t.Error("find(999) != nil for unknown id")
	}
	if s.find(0) != nil {
		t.Error("find(0) != nil for the sentinel id")
	}
}

func TestRemoveSwapsLastIntoSlot(t *testing.T) {
	s := newStore()
	first := addRect(s, 1)
	middle := addRect(s, 2)
	last := addRect(s, 3)

	s.remove(middle)

	if s.len() != 2 {
		t.Fatalf("len = %d, want 2", s.len())
	}
	if s.find(middle) != nil {
		t.Error("removed id still resolves")
	}

	// The formerly-last object must still resolve through its id after
	// being moved into the vacated slot.
	moved := s.find(last)
	if moved == nil {
		t.Fatal("formerly-last id no longer resolves after remove")
	}
	if moved.ZIndex != 3 {
		t.Errorf("moved object ZIndex = %d, want 3", moved.ZIndex)
	}
	if s.find(first) == nil {
		t.Error("untouched id no longer resolves")
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	s := newStore()
	addRect(s, 0)
	s.remove(42)
	if s.len() != 1 {
		t.Errorf("len = %d after removing unknown id, want 1", s.len())
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	s := newStore()
	id := addRect(s, 0)
	s.remove(id)
	next := addRect(s, 0)
	if next <= id {
		t.Errorf("id %d issued after removing %d; ids must be monotonic", next, id)
	}

	s.clear()
	afterClear := addRect(s, 0)
	if afterClear <= next {
		t.Errorf("id %d issued after clear, want > %d", afterClear, next)
	}
}

func TestRandomRemovalRoundTrip(t *testing.T) {
	const n = 200
	s := newStore()
	ids := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, addRect(s, i))
	}

	removed := make(map[uint32]bool)
	for _, id := range ids {
		if rand.IntN(2) == 0 {
			s.remove(id)
			removed[id] = true
		}
	}

	if s.len() != n-len(removed) {
		t.Fatalf("len = %d, want %d", s.len(), n-len(removed))
	}
	for _, id := range ids {
		obj := s.find(id)
		if removed[id] && obj != nil {
			t.Fatalf("removed id %d still resolves", id)
		}
		if !removed[id] {
			if obj == nil {
				t.Fatalf("live id %d does not resolve", id)
			}
			if obj.ID() != id {
				t.Fatalf("id %d resolves to object %d", id, obj.ID())
			}
		}
	}
}

func TestClearEmptiesPool(t *testing.T) {
	s := newStore()
	id := addRect(s, 0)
	addRect(s, 1)

	s.clear()

	if s.len() != 0 {
		t.Errorf("len = %d after clear, want 0", s.len())
	}
	if s.find(id) != nil {
		t.Error("id resolves after clear")
	}
}

func TestMutationsMarkPoolDirty(t *testing.T) {
	s := newStore()
	var scratch []Object

	id := addRect(s, 0)
	if !s.needsSort {
		t.Error("add did not mark pool dirty")
	}

	s.resort(&scratch)
	if s.needsSort {
		t.Error("resort did not clear dirty flag")
	}

	s.remove(id)
	if !s.needsSort {
		t.Error("remove did not mark pool dirty")
	}
}
