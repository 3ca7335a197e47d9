package users

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/structs"
	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sessions expire 21 days after their last refresh.
const sessionMaxAge = 21 * 24 * time.Hour

type Session struct {
	Id          scholid.ScholID `bson:"_id" msgpack:"_id"`
	UserId      scholid.ScholID `bson:"user" msgpack:"user"`
	IPAddress   string          `bson:"ip" msgpack:"ip"`
	UserAgent   string          `bson:"ua" msgpack:"ua"`
	RefreshedAt int64           `bson:"refreshed" msgpack:"refreshed"`
}

func CreateSession(userId scholid.ScholID, ipAddress string, userAgent string) (Session, error) {
	s := Session{
		Id:          scholid.GenId(),
		UserId:      userId,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		RefreshedAt: time.Now().UnixMilli(),
	}

	if _, err := db.Sessions.InsertOne(context.TODO(), s); err != nil {
		return s, err
	}

	return s, nil
}

func GetSession(id scholid.ScholID) (Session, error) {
	var s Session
	err := db.Sessions.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		err = ErrSessionNotFound
	}
	return s, err
}

func GetSessionByToken(token string) (Session, error) {
	sessionId, _, err := verifySessionToken(token)
	if err != nil {
		return Session{}, err
	}
	return GetSession(sessionId)
}

func (s *Session) Delete() error {
	_, err := db.Sessions.DeleteOne(context.TODO(), bson.M{"_id": s.Id})
	return err
}

func DeleteSessionsForUser(userId scholid.ScholID) error {
	_, err := db.Sessions.DeleteMany(context.TODO(), bson.M{"user": userId})
	return err
}

func (s *Session) V0() structs.V0Session {
	return structs.V0Session{
		Id:          strconv.FormatInt(s.Id, 10),
		IPAddress:   s.IPAddress,
		UserAgent:   s.UserAgent,
		RefreshedAt: s.RefreshedAt,
	}
}

func (s *Session) Token() (string, error) {
	// Claims
	claims, err := msgpack.Marshal([]int64{s.Id, s.RefreshedAt})
	if err != nil {
		return "", err
	}

	// Signature
	h := hmac.New(sha256.New, SessionSigningKey)
	if _, err := h.Write(claims); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(claims) + "." + base64.URLEncoding.EncodeToString(h.Sum(nil)), nil
}

// verifySessionToken checks the token's signature and expiry and returns the
// session ID and refresh timestamp it carries. It does not hit the database.
func verifySessionToken(token string) (scholid.ScholID, int64, error) {
	// Split token into claims and signature
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTokenFormat
	}

	// Get claims
	claims, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return 0, 0, ErrInvalidTokenFormat
	}

	// Get signature
	signature, err := base64.URLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, 0, ErrInvalidTokenFormat
	}

	// Check signature
	h := hmac.New(sha256.New, SessionSigningKey)
	if _, err := h.Write(claims); err != nil {
		return 0, 0, err
	}
	if !hmac.Equal(signature, h.Sum(nil)) {
		return 0, 0, ErrInvalidTokenSignature
	}

	// Decode claims
	var decodedClaims []int64
	if err := msgpack.Unmarshal(claims, &decodedClaims); err != nil {
		return 0, 0, ErrInvalidTokenFormat
	}
	if len(decodedClaims) != 2 {
		return 0, 0, ErrInvalidTokenFormat
	}

	// Make sure the token hasn't expired
	if time.Now().UnixMilli() > decodedClaims[1]+sessionMaxAge.Milliseconds() {
		return 0, 0, ErrTokenExpired
	}

	return decodedClaims[0], decodedClaims[1], nil
}
