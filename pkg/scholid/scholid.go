package scholid

import (
	"math"
	"strconv"
	"sync"
	"time"
)

// ScholID Format:
// Timestamp (41-bits)
// Node ID (11-bits)
// Increment (11-bits)

type ScholID = int64

const Epoch int64 = 1609459200000 // 2021-01-01 12am GMT

const (
	TimestampBits = 41
	TimestampMask = (1 << TimestampBits) - 1

	NodeIdBits = 11
	NodeIdMask = (1 << NodeIdBits) - 1

	IncrementBits = 11
	IncrementMask = (1 << IncrementBits) - 1
)

var NodeId int
var MaxIncrement = math.Pow(2, IncrementBits) - 1

var idIncrementLock = sync.Mutex{}
var idIncrementTs int64 = 0
var idIncrement int64 = 0

func Init(nodeId string) error {
	var err error
	NodeId, err = strconv.Atoi(nodeId)
	return err
}

func GenId() int64 {
	// Get timestamp
	ts := time.Now().UnixMilli()

	// Get increment
	idIncrementLock.Lock()
	if idIncrementTs != ts {
		idIncrementTs = ts
		idIncrement = 0
	} else if idIncrement >= int64(MaxIncrement) {
		// Increment space for this millisecond is exhausted, wait for the next one.
		idIncrementLock.Unlock()
		for time.Now().UnixMilli() == ts {
			continue
		}
		return GenId()
	} else {
		idIncrement += 1
	}
	increment := idIncrement
	idIncrementLock.Unlock()

	// Construct ID
	id := (ts - Epoch) << (NodeIdBits + IncrementBits)
	id |= int64(NodeId) << IncrementBits
	id |= increment

	return id
}

// WARNING: This may result in conflicts because it generates the 1st possible
// ID for the given timestamp. Only use it for range scans.
func GenIdForTs(ts int64) int64 {
	return (ts - Epoch) << (NodeIdBits + IncrementBits)
}

func Timestamp(id int64) int64 {
	return (id >> (NodeIdBits + IncrementBits) & TimestampMask) + Epoch
}

func Extract(id int64) struct {
	Timestamp int64
	NodeId    int64
	Increment int64
} {
	return struct {
		Timestamp int64
		NodeId    int64
		Increment int64
	}{
		Timestamp: Timestamp(id),
		NodeId:    (id >> IncrementBits) & NodeIdMask,
		Increment: id & IncrementMask,
	}
}
