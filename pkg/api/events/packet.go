package events

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/scholarsknowledge/server/pkg/api/events/packets"
	"github.com/vmihailenco/msgpack/v5"
)

type Packet struct {
	Nonce     int64
	CreatedAt int64

	JsonEncoded    []byte
	MsgpackEncoded []byte
}

func createPacket(server *Server, v0 *packets.V0Packet) (*Packet, error) {
	var p = Packet{
		Nonce:     server.getNextNonce(),
		CreatedAt: time.Now().UnixMilli(),
	}
	var err error

	// Add nonce to the versioned packet
	v0.Nonce = strconv.FormatInt(p.Nonce, 10)

	// json
	p.JsonEncoded, err = json.Marshal(v0)
	if err != nil {
		return nil, err
	}

	// msgpack
	p.MsgpackEncoded, err = msgpack.Marshal(v0)
	if err != nil {
		return nil, err
	}

	return &p, err
}
