package users

import (
	"context"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Settings holds per-user consent toggles and feed preferences.
type Settings struct {
	UserId scholid.ScholID `bson:"_id"`

	// Consent toggles
	ShareWithPartners bool `bson:"share_with_partners"`
	EmailUpdates      bool `bson:"email_updates"`

	// Narrows the feed to faculty-scoped posts only
	FacultyOnlyFeed bool `bson:"faculty_only_feed"`
}

func defaultSettings(userId scholid.ScholID) Settings {
	return Settings{
		UserId:            userId,
		ShareWithPartners: structs.V0DefaultUserSettings.ShareWithPartners,
		EmailUpdates:      structs.V0DefaultUserSettings.EmailUpdates,
		FacultyOnlyFeed:   structs.V0DefaultUserSettings.FacultyOnlyFeed,
	}
}

func GetSettings(userId scholid.ScholID) (Settings, error) {
	var s Settings
	err := db.UserSettings.FindOne(context.TODO(), bson.M{"_id": userId}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return defaultSettings(userId), nil
	}
	return s, err
}

type SettingsUpdate struct {
	ShareWithPartners *bool `bson:"share_with_partners,omitempty"`
	EmailUpdates      *bool `bson:"email_updates,omitempty"`
	FacultyOnlyFeed   *bool `bson:"faculty_only_feed,omitempty"`
}

func UpdateSettings(userId scholid.ScholID, update SettingsUpdate) (Settings, error) {
	opts := options.Update().SetUpsert(true)
	if _, err := db.UserSettings.UpdateByID(
		context.TODO(),
		userId,
		bson.M{"$set": update},
		opts,
	); err != nil {
		return Settings{}, err
	}
	return GetSettings(userId)
}

func (s *Settings) V0() structs.V0UserSettings {
	return structs.V0UserSettings{
		ShareWithPartners: s.ShareWithPartners,
		EmailUpdates:      s.EmailUpdates,
		FacultyOnlyFeed:   s.FacultyOnlyFeed,
	}
}
