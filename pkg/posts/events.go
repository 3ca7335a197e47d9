package posts

import (
	"context"

	"github.com/scholarsknowledge/server/pkg/events"
	"github.com/scholarsknowledge/server/pkg/rdb"
	"github.com/vmihailenco/msgpack/v5"
)

func EmitCreatePostEvent(p *Post) error {
	// Marshal packet
	marshaledPacket, err := msgpack.Marshal(&events.CreatePost{
		Id:         p.Id,
		AuthorId:   p.AuthorId,
		AuthorType: p.AuthorType,
		Audience:   p.Audience,
		Type:       p.Type,
		Title:      p.Title,
		CreatedAt:  p.CreatedAt(),
	})
	if err != nil {
		return err
	}
	marshaledPacket = append([]byte{events.OpCreatePost}, marshaledPacket...)

	// Send packet
	return rdb.Client.Publish(context.TODO(), events.Channel, marshaledPacket).Err()
}

func EmitDeletePostEvent(p *Post) error {
	// Marshal packet
	marshaledPacket, err := msgpack.Marshal(&events.DeletePost{
		Id:       p.Id,
		Audience: p.Audience,
	})
	if err != nil {
		return err
	}
	marshaledPacket = append([]byte{events.OpDeletePost}, marshaledPacket...)

	// Send packet
	return rdb.Client.Publish(context.TODO(), events.Channel, marshaledPacket).Err()
}
