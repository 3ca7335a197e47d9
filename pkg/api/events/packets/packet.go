package packets

// V0Packet is the envelope for every message the gateway writes. Nonce is
// a monotonically increasing string a client echoes back when resuming a
// session to receive the packets it missed.
type V0Packet struct {
	Cmd   string      `json:"cmd" msgpack:"cmd"`
	Nonce string      `json:"nonce,omitempty" msgpack:"nonce,omitempty"`
	Val   interface{} `json:"val,omitempty" msgpack:"val,omitempty"`
}
