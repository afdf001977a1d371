package booking

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Fatalf("plain error: expected internal, got %s", got)
	}
	wrapped := fmt.Errorf("handler: %w", fail("op", KindRoomFull, nil))
	if got := KindOf(wrapped); got != KindRoomFull {
		t.Fatalf("wrapped: expected room_full, got %s", got)
	}
	if !errors.Is(wrapped, ErrRoomFull) {
		t.Fatalf("errors.Is should match by kind")
	}
	if errors.Is(wrapped, ErrRoomNotFound) {
		t.Fatalf("errors.Is matched a different kind")
	}
}

func TestInternalKeepsExistingKind(t *testing.T) {
	err := internal("outer", fail("inner", KindNotEnrolled, nil))
	if KindOf(err) != KindNotEnrolled {
		t.Fatalf("expected not_enrolled to survive, got %v", err)
	}
}

func TestErrorString(t *testing.T) {
	err := fail("booking.CreateBooking", KindRoomFull, nil)
	if got := err.Error(); got != "booking.CreateBooking: room_full" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Fatalf("unexpected unknown kind name %q", got)
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]uint64{"1": 1, " 42 ": 42, "18446744073709551615": 18446744073709551615}
	for raw, want := range cases {
		got, ok := ParseID(raw)
		if !ok || got != want {
			t.Fatalf("ParseID(%q) = %d, %v; want %d", raw, got, ok, want)
		}
	}
	for _, raw := range []string{"", "0", "-1", "+", "1.5", "x1", "18446744073709551616"} {
		if _, ok := ParseID(raw); ok {
			t.Fatalf("ParseID(%q) accepted", raw)
		}
	}
}
