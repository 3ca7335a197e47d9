package events

// Pub/sub packets are the op code byte followed by the msgpack-encoded
// event body, published on the "events" channel.
const (
	OpCreatePost byte = 0x1
	OpDeletePost byte = 0x2
	OpUpdateUser byte = 0x3
)

const Channel = "events"
