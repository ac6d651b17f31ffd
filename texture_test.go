package drake

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInternMemoizesPages(t *testing.T) {
	r := newTextureRegistry()
	page := ebiten.NewImage(64, 64)

	first := r.intern(page)
	second := r.intern(page)

	if first == 0 {
		t.Fatal("intern returned the sentinel id")
	}
	if first != second {
		t.Errorf("intern ids = %d, %d for the same page, want equal", first, second)
	}
	if r.lookup(first) != page {
		t.Error("interned id does not resolve to the page")
	}
}

func TestInternSeparatePagesGetSeparateIDs(t *testing.T) {
	r := newTextureRegistry()
	a := r.intern(ebiten.NewImage(8, 8))
	b := r.intern(ebiten.NewImage(8, 8))
	if a == b {
		t.Errorf("distinct pages share id %d", a)
	}
}

func TestDeleteUnknownTextureIsNoOp(t *testing.T) {
	r := newTextureRegistry()
	r.delete(42)
	if r.lookup(42) != nil {
		t.Error("unknown id resolves after delete")
	}
}

func TestDeleteInternedPageUnmapsWithoutDeallocate(t *testing.T) {
	r := newTextureRegistry()
	page := ebiten.NewImage(16, 16)
	id := r.intern(page)

	r.delete(id)

	if r.lookup(id) != nil {
		t.Error("deleted interned id still resolves")
	}
	// The page stays usable: re-interning registers it under a fresh id.
	again := r.intern(page)
	if again == id {
		t.Errorf("re-intern reused id %d", id)
	}
	if r.lookup(again) != page {
		t.Error("re-interned page does not resolve")
	}
}

func TestWhitePixelIsLazySingleton(t *testing.T) {
	r := newTextureRegistry()
	first := r.whitePixel()
	second := r.whitePixel()
	if first != second {
		t.Error("whitePixel allocated twice")
	}
	if b := first.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("white pixel size = %dx%d, want 1x1", b.Dx(), b.Dy())
	}
}
