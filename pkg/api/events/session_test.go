package events

import (
	"testing"

	"github.com/scholarsknowledge/server/pkg/audience"
)

func TestWantsPost(t *testing.T) {
	viewer := audience.Viewer{
		University: "UoN",
		Faculty:    "Science",
		Program:    "CS",
		Year:       "2",
	}

	tests := []struct {
		name        string
		aud         audience.Audience
		facultyOnly bool
		want        bool
	}{
		{name: "global", aud: audience.Global(), want: true},
		{name: "matching program", aud: audience.Program("UoN", "Science", "CS", "2"), want: true},
		{name: "other program", aud: audience.Program("UoN", "Science", "Math", "2"), want: false},
		{name: "matching faculty", aud: audience.Faculty("UoN", "Science", ""), want: true},
		{name: "zero audience matches nobody", aud: audience.Audience{}, want: false},
		{name: "faculty only drops global", aud: audience.Global(), facultyOnly: true, want: false},
		{name: "faculty only keeps faculty", aud: audience.Faculty("UoN", "Science", ""), facultyOnly: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{viewer: viewer, facultyOnly: tt.facultyOnly}
			if got := s.wantsPost(tt.aud); got != tt.want {
				t.Errorf("wantsPost() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Fan-out snapshots the session list, so a packet can reach a session that
// ended in between. That must drop the packet, not panic on the closed
// send channel.
func TestDeliverAfterEnd(t *testing.T) {
	server := NewServer()
	s := newSession(server, 1, audience.Viewer{University: "UoN"}, false)

	if err := s.endSession(); err != nil {
		t.Fatalf("endSession() error: %v", err)
	}
	if server.getSession(s.id) != nil {
		t.Error("session still registered after end")
	}

	s.deliver(&Packet{Nonce: server.getNextNonce()})

	// A second end is a no-op, not a double close
	if err := s.endSession(); err != nil {
		t.Fatalf("second endSession() error: %v", err)
	}
}
