package networks

import (
	"context"
	"net"
	"time"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/rdb"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/yl2chen/cidranger"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	OpCreateBlock byte = 0x1
	OpDeleteBlock byte = 0x2
)

var ranger = cidranger.NewPCTrieRanger()

type BlockEntry struct {
	Id        scholid.ScholID `bson:"_id"`
	Address   string          `bson:"address"`
	ExpiresAt int64           `bson:"expires_at"` // -1 for permanent
}

func (b BlockEntry) Network() net.IPNet {
	_, network, _ := net.ParseCIDR(b.Address)
	return *network
}

// Init loads the persisted netblocks into the trie.
func Init() error {
	cursor, err := db.Netblock.Find(context.TODO(), bson.M{})
	if err != nil {
		return err
	}

	var entries []BlockEntry
	if err := cursor.All(context.TODO(), &entries); err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	for _, entry := range entries {
		if entry.ExpiresAt != -1 && entry.ExpiresAt < now {
			continue
		}
		if err := ranger.Insert(entry); err != nil {
			return err
		}
	}

	return nil
}

func CreateBlock(address string, expiresAt int64) (BlockEntry, error) {
	entry := BlockEntry{
		Id:        scholid.GenId(),
		Address:   address,
		ExpiresAt: expiresAt,
	}

	if err := ranger.Insert(entry); err != nil {
		return entry, err
	}

	// Store in database
	if _, err := db.Netblock.InsertOne(context.TODO(), entry); err != nil {
		return entry, err
	}

	// Tell other instances about the block
	marshaledEntry, err := msgpack.Marshal(entry)
	if err != nil {
		return entry, err
	}
	marshaledEntry = append([]byte{OpCreateBlock}, marshaledEntry...)
	err = rdb.Client.Publish(context.TODO(), "firewall", marshaledEntry).Err()
	if err != nil {
		return entry, err
	}

	return entry, nil
}

func IsBlocked(address string) (bool, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return false, nil
	}
	return ranger.Contains(ip)
}
