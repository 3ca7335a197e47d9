package scholid

import (
	"testing"
	"time"
)

func TestGenIdOrdered(t *testing.T) {
	prev := GenId()
	for i := 0; i < 1000; i++ {
		id := GenId()
		if id <= prev {
			t.Fatalf("ids not strictly increasing: %d then %d", prev, id)
		}
		prev = id
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().UnixMilli()
	id := GenId()
	after := time.Now().UnixMilli()

	ts := Timestamp(id)
	if ts < before || ts > after {
		t.Errorf("Timestamp() = %d, want between %d and %d", ts, before, after)
	}
}

func TestExtract(t *testing.T) {
	NodeId = 5
	defer func() { NodeId = 0 }()

	id := GenId()
	parts := Extract(id)
	if parts.NodeId != 5 {
		t.Errorf("Extract().NodeId = %d, want 5", parts.NodeId)
	}
	if parts.Timestamp != Timestamp(id) {
		t.Errorf("Extract().Timestamp = %d, want %d", parts.Timestamp, Timestamp(id))
	}
}

func TestGenIdForTs(t *testing.T) {
	ts := int64(1700000000000)
	id := GenIdForTs(ts)
	if Timestamp(id) != ts {
		t.Errorf("Timestamp(GenIdForTs(%d)) = %d", ts, Timestamp(id))
	}

	// The range-scan ID sorts before every real ID of the same millisecond.
	if real := GenId(); id >= real && ts < time.Now().UnixMilli() {
		t.Errorf("range-scan id %d should sort before current ids", id)
	}
}
