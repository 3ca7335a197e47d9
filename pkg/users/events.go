package users

import (
	"context"

	"github.com/scholarsknowledge/server/pkg/events"
	"github.com/scholarsknowledge/server/pkg/rdb"
	"github.com/vmihailenco/msgpack/v5"
)

func EmitUpdateUserEvent(u *User) error {
	// Marshal packet
	marshaledPacket, err := msgpack.Marshal(&events.UpdateUser{
		Id:          u.Id,
		DisplayName: u.DisplayName,
	})
	if err != nil {
		return err
	}
	marshaledPacket = append([]byte{events.OpUpdateUser}, marshaledPacket...)

	// Send packet
	return rdb.Client.Publish(context.TODO(), events.Channel, marshaledPacket).Err()
}
