package events

import (
	"strconv"

	"github.com/scholarsknowledge/server/pkg/api/events/packets"
	"github.com/scholarsknowledge/server/pkg/events"
)

// sendCreatePost fans the post out to every session whose viewer matches
// its audience tag. The author's own sessions are skipped; a user is never
// notified about their own post.
func sendCreatePost(s *Server, e *events.CreatePost) error {
	p, err := createPacket(s, &packets.V0Packet{
		Cmd: "create_post",
		Val: &packets.V0CreatePost{
			PostId:     strconv.FormatInt(e.Id, 10),
			AuthorId:   strconv.FormatInt(e.AuthorId, 10),
			AuthorType: e.AuthorType,
			Type:       e.Type,
			Title:      e.Title,
			CreatedAt:  e.CreatedAt,
		},
	})
	if err != nil {
		return err
	}

	go func() {
		for _, sess := range s.snapshotSessions() {
			if sess.userId == e.AuthorId {
				continue
			}
			if !sess.wantsPost(e.Audience) {
				continue
			}
			sess.deliver(p)
		}
	}()

	return nil
}

func sendDeletePost(s *Server, e *events.DeletePost) error {
	p, err := createPacket(s, &packets.V0Packet{
		Cmd: "delete_post",
		Val: &packets.V0DeletePost{
			PostId: strconv.FormatInt(e.Id, 10),
		},
	})
	if err != nil {
		return err
	}

	go func() {
		for _, sess := range s.snapshotSessions() {
			if !sess.wantsPost(e.Audience) {
				continue
			}
			sess.deliver(p)
		}
	}()

	return nil
}

func sendUpdateUser(s *Server, e *events.UpdateUser) error {
	p, err := createPacket(s, &packets.V0Packet{
		Cmd: "update_user",
		Val: &packets.V0UpdateUser{
			UserId:      strconv.FormatInt(e.Id, 10),
			DisplayName: e.DisplayName,
		},
	})
	if err != nil {
		return err
	}

	go func() {
		for _, sess := range s.snapshotSessions() {
			sess.deliver(p)
		}
	}()

	return nil
}
