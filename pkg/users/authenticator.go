package users

import (
	"context"
	"strconv"

	"github.com/pquerna/otp/totp"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/structs"
	"go.mongodb.org/mongo-driver/bson"
)

type Authenticator struct {
	Id         scholid.ScholID `bson:"_id"`
	Type       string          `bson:"type"`
	Nickname   string          `bson:"nickname,omitempty"`
	TotpSecret string          `bson:"totp_secret,omitempty"`
}

func (a *Account) AddTotpAuthenticator(nickname string, secret string) (*Authenticator, error) {
	authenticator := Authenticator{
		Id:         scholid.GenId(),
		Type:       "totp",
		Nickname:   nickname,
		TotpSecret: secret,
	}
	a.Authenticators = append(a.Authenticators, authenticator)
	_, err := db.Accounts.UpdateByID(
		context.TODO(),
		a.Id,
		bson.M{"$addToSet": bson.M{"authenticators": &authenticator}},
	)
	return &authenticator, err
}

func (a *Account) RemoveAuthenticator(authenticatorId scholid.ScholID) error {
	found := false
	newAuthenticators := []Authenticator{}
	for _, authenticator := range a.Authenticators {
		if authenticator.Id == authenticatorId {
			found = true
			continue
		}
		newAuthenticators = append(newAuthenticators, authenticator)
	}
	if !found {
		return ErrAuthenticatorNotFound
	}
	a.Authenticators = newAuthenticators
	_, err := db.Accounts.UpdateOne(
		context.TODO(),
		bson.M{"_id": a.Id},
		bson.M{"$pull": bson.M{"authenticators": bson.M{"_id": authenticatorId}}},
	)
	return err
}

func (a *Account) CheckTotp(code string) bool {
	for _, authenticator := range a.Authenticators {
		if authenticator.Type != "totp" {
			continue
		}

		if valid := totp.Validate(code, authenticator.TotpSecret); valid {
			return true
		}
	}

	return false
}

func (a *Authenticator) V0() *structs.V0Authenticator {
	return &structs.V0Authenticator{
		Id:           strconv.FormatInt(a.Id, 10),
		Type:         a.Type,
		Nickname:     a.Nickname,
		RegisteredAt: scholid.Timestamp(a.Id),
	}
}
