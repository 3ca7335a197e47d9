package users

import (
	"context"
	"strconv"

	"github.com/scholarsknowledge/server/pkg/audience"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// User roles.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
)

// User flags.
const (
	FlagDeleted int64 = 1 << iota
	FlagLocked
	FlagAdmin
)

type User struct {
	Id          scholid.ScholID `bson:"_id" msgpack:"id"`
	Username    string          `bson:"username" msgpack:"username"`
	DisplayName string          `bson:"display_name" msgpack:"display_name"`
	Role        string          `bson:"role" msgpack:"role"`

	// Academic coordinates. Audience keys are derived from these at
	// evaluation time, never stored on the viewer side.
	University string `bson:"university,omitempty" msgpack:"university,omitempty"`
	Faculty    string `bson:"faculty,omitempty" msgpack:"faculty,omitempty"`
	Program    string `bson:"program,omitempty" msgpack:"program,omitempty"`
	Year       string `bson:"year,omitempty" msgpack:"year,omitempty"`
	Continent  string `bson:"continent,omitempty" msgpack:"continent,omitempty"`
	Country    string `bson:"country,omitempty" msgpack:"country,omitempty"`

	Flags int64 `bson:"flags" msgpack:"flags"`
}

func GetUser(id scholid.ScholID) (User, error) {
	var u User
	err := db.Users.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		err = ErrUserNotFound
	}
	return u, err
}

func GetUserByUsername(username string) (User, error) {
	var u User
	err := db.Users.FindOne(context.TODO(), bson.M{"username": username}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		err = ErrUserNotFound
	}
	return u, err
}

func UsernameTaken(username string) (bool, error) {
	count, err := db.Users.CountDocuments(context.TODO(), bson.M{"username": username})
	return count > 0, err
}

func (u *User) HasFlag(flag int64) bool {
	return u.Flags&flag == flag
}

// Coords returns the coordinates audience tags are matched against.
func (u *User) Coords() audience.Viewer {
	return audience.Viewer{
		University: u.University,
		Faculty:    u.Faculty,
		Program:    u.Program,
		Year:       u.Year,
	}
}

type ProfileUpdate struct {
	DisplayName *string `bson:"display_name,omitempty"`
	University  *string `bson:"university,omitempty"`
	Faculty     *string `bson:"faculty,omitempty"`
	Program     *string `bson:"program,omitempty"`
	Year        *string `bson:"year,omitempty"`
	Continent   *string `bson:"continent,omitempty"`
	Country     *string `bson:"country,omitempty"`
}

func (u *User) UpdateProfile(update ProfileUpdate) error {
	if _, err := db.Users.UpdateByID(
		context.TODO(),
		u.Id,
		bson.M{"$set": update},
	); err != nil {
		return err
	}

	if update.DisplayName != nil {
		u.DisplayName = *update.DisplayName
	}
	if update.University != nil {
		u.University = *update.University
	}
	if update.Faculty != nil {
		u.Faculty = *update.Faculty
	}
	if update.Program != nil {
		u.Program = *update.Program
	}
	if update.Year != nil {
		u.Year = *update.Year
	}
	if update.Continent != nil {
		u.Continent = *update.Continent
	}
	if update.Country != nil {
		u.Country = *update.Country
	}

	return nil
}

func (u *User) V0() structs.V0User {
	return structs.V0User{
		Id:          strconv.FormatInt(u.Id, 10),
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		University:  u.University,
		Faculty:     u.Faculty,
		Program:     u.Program,
		Year:        u.Year,
		Continent:   u.Continent,
		Country:     u.Country,
		Flags:       u.Flags,
		CreatedAt:   scholid.Timestamp(u.Id),
	}
}
