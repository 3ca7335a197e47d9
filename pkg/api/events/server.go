package events

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/scholarsknowledge/server/pkg/events"
	"github.com/scholarsknowledge/server/pkg/users"
	"github.com/vmihailenco/msgpack/v5"
)

type Server struct {
	httpMux *http.ServeMux

	sessions      map[int64]*Session
	sessionsMutex sync.RWMutex

	nextNonce  int64
	nonceMutex sync.Mutex
}

func NewServer() *Server {
	// Create WebSocket upgrader
	upgrader := websocket.Upgrader{
		ReadBufferSize:    1024,
		WriteBufferSize:   1024,
		CheckOrigin:       func(r *http.Request) bool { return true },
		EnableCompression: true,
	}

	// Create server
	s := Server{
		httpMux:  http.NewServeMux(),
		sessions: make(map[int64]*Session),
	}
	s.httpMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Get current session or create new session
		var session *Session
		if r.URL.Query().Has("sid") && r.URL.Query().Has("nonce") {
			sid, _ := strconv.ParseInt(r.URL.Query().Get("sid"), 10, 64)
			session = s.getSession(sid)
			if session == nil {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Session not found."))
				return
			}
		} else {
			// Authenticate and capture the viewer's coordinates
			userSession, err := users.GetSessionByToken(r.URL.Query().Get("token"))
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Invalid token."))
				return
			}
			user, err := users.GetUser(userSession.UserId)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			settings, err := users.GetSettings(user.Id)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			// The faculty-only preference is captured once per session; a
			// client that toggles it reconnects to pick up the new
			// stream filter
			session = newSession(&s, user.Id, user.Coords(), settings.FacultyOnlyFeed)
		}

		var protoFormat int8
		if r.URL.Query().Get("format") == "msgpack" {
			protoFormat = 1
		}

		// Upgrade connection
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		// Register connection
		if err := session.registerConn(conn, protoFormat); err != nil {
			return
		}

		// Re-send missed packets
		if r.URL.Query().Has("sid") && r.URL.Query().Has("nonce") {
			lastNonce, _ := strconv.ParseInt(r.URL.Query().Get("nonce"), 10, 64)
			for _, packet := range session.packets {
				if packet.Nonce > lastNonce {
					session.writeToConn(packet)
				}
			}
		}
	})

	return &s
}

func (s *Server) addSession(session *Session) {
	s.sessionsMutex.Lock()
	defer s.sessionsMutex.Unlock()
	s.sessions[session.id] = session
}

func (s *Server) getSession(id int64) *Session {
	s.sessionsMutex.RLock()
	defer s.sessionsMutex.RUnlock()
	return s.sessions[id]
}

func (s *Server) removeSession(id int64) {
	s.sessionsMutex.Lock()
	defer s.sessionsMutex.Unlock()
	delete(s.sessions, id)
}

// snapshotSessions copies the current session list so fan-out doesn't hold
// the lock while writing to send channels.
func (s *Server) snapshotSessions() []*Session {
	s.sessionsMutex.RLock()
	defer s.sessionsMutex.RUnlock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

func (s *Server) getNextNonce() int64 {
	s.nonceMutex.Lock()
	defer s.nonceMutex.Unlock()
	nonce := s.nextNonce
	s.nextNonce++
	return nonce
}

func (s *Server) pubSub() error {
	// Create client
	opt, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		return err
	}
	rdb := redis.NewClient(opt)

	// Create pub/sub channel
	pubsub := rdb.Subscribe(context.Background(), events.Channel)

	// Listen to incoming pub/sub events
	go func() {
		for msg := range pubsub.Channel() {
			// Parse event
			payload := []byte(msg.Payload)
			eventType := payload[0]
			payload = payload[1:]

			// Construct and send event
			switch eventType {
			case events.OpCreatePost:
				var evData events.CreatePost
				if err := msgpack.Unmarshal(payload, &evData); err != nil {
					log.Println(err)
					continue
				}
				if err := sendCreatePost(s, &evData); err != nil {
					log.Println(err)
					continue
				}
			case events.OpDeletePost:
				var evData events.DeletePost
				if err := msgpack.Unmarshal(payload, &evData); err != nil {
					log.Println(err)
					continue
				}
				if err := sendDeletePost(s, &evData); err != nil {
					log.Println(err)
					continue
				}
			case events.OpUpdateUser:
				var evData events.UpdateUser
				if err := msgpack.Unmarshal(payload, &evData); err != nil {
					log.Println(err)
					continue
				}
				if err := sendUpdateUser(s, &evData); err != nil {
					log.Println(err)
					continue
				}
			}
		}
	}()

	return nil
}

func (s *Server) Run(exposeAddr string) error {
	// Start pub/sub
	if err := s.pubSub(); err != nil {
		return err
	}

	// Start HTTP server
	fmt.Println("Serving events HTTP on", exposeAddr)
	return http.ListenAndServe(exposeAddr, s.httpMux)
}
