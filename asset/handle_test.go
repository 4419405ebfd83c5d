package asset

import "testing"

type fakeTexture struct{ width, height int }

func TestHandleCloneDropRefcounting(t *testing.T) {
	var dropped ID
	h := newHandle("rock", KindTexture, &fakeTexture{width: 64, height: 64}, func(id ID) { dropped = id })

	clone := h.Clone()
	if h.StrongCount() != 2 {
		t.Fatalf("expected strong count 2 after Clone, got %d", h.StrongCount())
	}

	clone.Drop()
	if h.StrongCount() != 1 {
		t.Fatalf("expected strong count 1 after dropping the clone, got %d", h.StrongCount())
	}
	if dropped != "rock" {
		t.Fatalf("expected onDrop(\"rock\") once strong count reached 1, got %q", dropped)
	}

	dropped = ""
	h.Drop()
	if dropped != "" {
		t.Fatalf("onDrop fired again below a strong count of 1: %s", dropped)
	}
}

func TestCastPanicsOnKindMismatch(t *testing.T) {
	h := newHandle("rock", KindTexture, &fakeTexture{}, nil)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Cast to panic on type mismatch")
		}
	}()
	Cast[struct{ Frequency float32 }](h)
}

func TestTypedGetReturnsUnderlyingObject(t *testing.T) {
	h := newHandle("rock", KindTexture, &fakeTexture{width: 8, height: 8}, nil)
	typed := NewTyped[fakeTexture](h)
	if typed.Get().width != 8 {
		t.Fatalf("expected width 8, got %d", typed.Get().width)
	}
	clone := typed.Clone()
	if h.StrongCount() != 2 {
		t.Fatalf("expected Typed.Clone to share the refcount")
	}
	clone.Drop()
}
