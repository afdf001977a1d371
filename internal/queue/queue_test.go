package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLine(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	created := NewCreatedEvent(5, 7, 3, at).LogLine()
	if created != "[2026-03-01T09:30:00Z] Booking created | booking_id=5 | user_id=7 | room_id=3\n" {
		t.Fatalf("created line = %q", created)
	}
	changed := NewChangedEvent(5, 7, 3, 4, at).LogLine()
	if !strings.Contains(changed, "from_room=3 | to_room=4") {
		t.Fatalf("changed line = %q", changed)
	}
}

func TestAuditLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	a := NewAuditLog(path)
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	for _, ev := range []BookingEvent{NewCreatedEvent(1, 2, 3, at), NewChangedEvent(1, 2, 3, 4, at)} {
		body, _ := json.Marshal(ev)
		if err := a.Handle(body); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "Booking changed") {
		t.Fatalf("log = %q", raw)
	}
}

func TestAuditLogRejectsBadPayloads(t *testing.T) {
	a := NewAuditLog(filepath.Join(t.TempDir(), "booking.log"))
	if err := a.Handle([]byte("{")); err == nil {
		t.Fatalf("expected unmarshal error")
	}
	if err := a.Handle([]byte(`{"event":"booking.deleted"}`)); err == nil {
		t.Fatalf("expected unknown event error")
	}
}
