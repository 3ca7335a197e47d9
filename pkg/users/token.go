package users

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var SessionSigningKey []byte
var EmailTicketSigningKey []byte

// Email tickets expire after 24 hours.
const emailTicketMaxAge = 24 * time.Hour

// Email ticket purposes. A ticket is only accepted for the purpose it was
// issued with.
const (
	TicketVerifyEmail     = "verify"
	TicketRecoverPassword = "recover"
)

func InitTokenSigningKeys() error {
	var signingKeys struct {
		Id      string `bson:"_id"`
		Session []byte `bson:"session"`
		Email   []byte `bson:"email"`
	}
	err := db.Config.FindOne(context.TODO(), bson.M{"_id": "signing_keys"}).Decode(&signingKeys)
	if err == mongo.ErrNoDocuments {
		signingKeys.Id = "signing_keys"
		signingKeys.Session = make([]byte, 64)
		signingKeys.Email = make([]byte, 64)
		if _, err := rand.Read(signingKeys.Session); err != nil {
			return err
		}
		if _, err := rand.Read(signingKeys.Email); err != nil {
			return err
		}
		if _, err := db.Config.InsertOne(context.TODO(), signingKeys); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	SessionSigningKey = signingKeys.Session
	EmailTicketSigningKey = signingKeys.Email

	return nil
}

type emailTicketClaims struct {
	UserId   scholid.ScholID `msgpack:"user"`
	Email    string          `msgpack:"email"`
	Purpose  string          `msgpack:"purpose"`
	IssuedAt int64           `msgpack:"iat"`
}

// CreateEmailTicket issues a signed ticket proving ownership of an email
// address. The ticket is emailed to the address and handed back by the
// client on the endpoint matching its purpose.
func CreateEmailTicket(userId scholid.ScholID, email string, purpose string) (string, error) {
	claims, err := msgpack.Marshal(emailTicketClaims{
		UserId:   userId,
		Email:    email,
		Purpose:  purpose,
		IssuedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, EmailTicketSigningKey)
	if _, err := h.Write(claims); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(claims) + "." + base64.URLEncoding.EncodeToString(h.Sum(nil)), nil
}

// VerifyEmailTicket checks a ticket's signature, purpose and age and returns
// the user ID and email address it was issued for.
func VerifyEmailTicket(ticket string, purpose string) (scholid.ScholID, string, error) {
	parts := strings.Split(ticket, ".")
	if len(parts) != 2 {
		return 0, "", ErrInvalidTicketFormat
	}

	claims, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return 0, "", ErrInvalidTicketFormat
	}
	signature, err := base64.URLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, "", ErrInvalidTicketFormat
	}

	h := hmac.New(sha256.New, EmailTicketSigningKey)
	if _, err := h.Write(claims); err != nil {
		return 0, "", err
	}
	if !hmac.Equal(signature, h.Sum(nil)) {
		return 0, "", ErrInvalidTicketSignature
	}

	var decodedClaims emailTicketClaims
	if err := msgpack.Unmarshal(claims, &decodedClaims); err != nil {
		return 0, "", ErrInvalidTicketFormat
	}

	if decodedClaims.Purpose != purpose {
		return 0, "", ErrTicketPurposeMismatch
	}

	if time.Now().UnixMilli() > decodedClaims.IssuedAt+emailTicketMaxAge.Milliseconds() {
		return 0, "", ErrTicketExpired
	}

	return decodedClaims.UserId, decodedClaims.Email, nil
}
