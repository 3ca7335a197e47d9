package events

import (
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/scholarsknowledge/server/pkg/api/events/packets"
	"github.com/scholarsknowledge/server/pkg/audience"
	"github.com/scholarsknowledge/server/pkg/scholid"
)

const pingInterval = 45_000 // 45 seconds

type Session struct {
	id     int64
	server *Server

	userId      scholid.ScholID
	viewer      audience.Viewer
	facultyOnly bool

	send          chan *Packet
	packets       []*Packet
	lastSeenNonce int64

	conn           *websocket.Conn
	protoFormat    int8 // 0: json, 1: msgpack
	disconnectedAt int64

	endMutex sync.Mutex
	ended    bool
}

func newSession(server *Server, userId scholid.ScholID, viewer audience.Viewer, facultyOnly bool) *Session {
	// Create & register session
	s := Session{
		id:     server.getNextNonce(),
		server: server,

		userId:      userId,
		viewer:      viewer,
		facultyOnly: facultyOnly,

		send:    make(chan *Packet, 256),
		packets: []*Packet{},
	}
	s.server.addSession(&s)

	// Write thread
	go func() {
		for packet := range s.send {
			// Make sure to not re-send packets
			if packet.Nonce <= s.lastSeenNonce {
				continue
			}
			s.lastSeenNonce = packet.Nonce

			// Add to packets history
			s.packets = append(s.packets, packet)

			// Write message to conn if one exists
			if s.conn != nil {
				s.writeToConn(packet)
			}
		}
	}()

	// Background thread
	go func() {
		for {
			time.Sleep(time.Millisecond * pingInterval)

			if s.hasEnded() {
				break
			} else if s.conn == nil {
				// End session if there has been no conn for more than
				// the ping interval
				if s.disconnectedAt < time.Now().Add(-(time.Millisecond * pingInterval)).UnixMilli() {
					s.endSession()
					break
				}
			} else {
				// Trim packets older than the ping interval from
				// history; a resuming client can't be further behind
				cutoff := time.Now().Add(-(time.Millisecond * pingInterval)).UnixMilli()
				itemsToRemove := 0
				for _, packet := range s.packets {
					if packet.CreatedAt < cutoff {
						itemsToRemove++
					}
				}
				s.packets = s.packets[itemsToRemove:]
			}
		}
	}()

	return &s
}

// wantsPost reports whether a post with the given audience should reach
// this session. The faculty-only preference narrows the stream the same
// way it narrows the feed.
func (s *Session) wantsPost(aud audience.Audience) bool {
	if !aud.IsVisible(s.viewer) {
		return false
	}
	if s.facultyOnly && !aud.IsFacultyScoped() {
		return false
	}
	return true
}

func (s *Session) hasEnded() bool {
	s.endMutex.Lock()
	defer s.endMutex.Unlock()
	return s.ended
}

// deliver hands a packet to the write thread. Fan-out runs concurrently
// with endSession, so the ended check and the send happen under the same
// lock that endSession closes the channel under. A session whose buffer is
// full is too far behind; the packet is dropped and resume catches it up.
func (s *Session) deliver(packet *Packet) {
	s.endMutex.Lock()
	defer s.endMutex.Unlock()
	if s.ended {
		return
	}

	select {
	case s.send <- packet:
	default:
	}
}

func (s *Session) registerConn(conn *websocket.Conn, protoFormat int8) error {
	// Close current connection if one exists
	if s.conn != nil {
		s.conn.WriteMessage(websocket.CloseAbnormalClosure, []byte{})
		if err := s.conn.Close(); err != nil {
			return err
		}
	}

	// Set conn and protocol
	s.conn = conn
	s.protoFormat = protoFormat

	// Read incoming messages until connection ends
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.endSession()
				} else {
					conn.Close()
					s.conn = nil
					s.disconnectedAt = time.Now().UnixMilli()
				}
				break
			}
		}
	}()

	// Send hello
	p, err := createPacket(s.server, &packets.V0Packet{
		Cmd: "hello",
		Val: &packets.V0Hello{
			SessionId:    strconv.FormatInt(s.id, 10),
			PingInterval: pingInterval,
		},
	})
	if err != nil {
		return err
	}
	s.deliver(p)

	return nil
}

func (s *Session) writeToConn(packet *Packet) {
	if s.conn == nil {
		return
	}

	var err error
	if s.protoFormat == 1 && packet.MsgpackEncoded != nil {
		err = s.conn.WriteMessage(websocket.BinaryMessage, packet.MsgpackEncoded)
	} else if packet.JsonEncoded != nil {
		err = s.conn.WriteMessage(websocket.TextMessage, packet.JsonEncoded)
	}

	if err != nil {
		s.conn.Close()
	}
}

func (s *Session) endSession() error {
	// Make sure session hasn't already ended
	s.endMutex.Lock()
	if s.ended {
		s.endMutex.Unlock()
		return nil
	}

	// Set ended state & close send channel
	s.ended = true
	close(s.send)
	s.endMutex.Unlock()

	// De-register
	s.server.removeSession(s.id)

	// Wipe history
	s.packets = nil

	// Close connection if one exists
	if s.conn != nil {
		s.conn.WriteMessage(websocket.CloseAbnormalClosure, []byte{})
		s.conn.Close()
		s.conn = nil
	}

	return nil
}
