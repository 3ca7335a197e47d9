package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 14

type Account struct {
	Id scholid.ScholID `bson:"_id"`

	Email         string `bson:"email,omitempty"`
	EmailVerified bool   `bson:"email_verified,omitempty"`

	PasswordHash   []byte          `bson:"password,omitempty"`
	RecoveryCode   string          `bson:"recovery_code,omitempty"`
	Authenticators []Authenticator `bson:"authenticators,omitempty"`

	LastAuthAt int64 `bson:"last_auth_at"`
}

func CreateAccount(username string, email string, password string, role string) (Account, User, error) {
	userId := scholid.GenId()
	var account Account
	var user User

	// Make sure username hasn't been taken
	taken, err := UsernameTaken(username)
	if err != nil {
		return account, user, err
	} else if taken {
		return account, user, ErrUsernameTaken
	}

	// Create user
	user = User{
		Id:          userId,
		Username:    username,
		DisplayName: username,
		Role:        role,
	}
	if _, err := db.Users.InsertOne(context.TODO(), user); err != nil {
		return account, user, err
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return account, user, err
	}

	// Create account
	recoveryCode := make([]byte, 5)
	rand.Read(recoveryCode)
	account = Account{
		Id:           userId,
		Email:        email,
		PasswordHash: passwordHash,
		RecoveryCode: hex.EncodeToString(recoveryCode),
		LastAuthAt:   time.Now().UnixMilli(),
	}
	if _, err := db.Accounts.InsertOne(context.TODO(), account); err != nil {
		return account, user, err
	}

	return account, user, nil
}

func GetAccount(id scholid.ScholID) (Account, error) {
	var account Account
	err := db.Accounts.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		err = ErrAccountNotFound
	}
	return account, err
}

func GetAccountByEmail(email string) (Account, error) {
	var account Account
	err := db.Accounts.FindOne(context.TODO(), bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		err = ErrAccountNotFound
	}
	return account, err
}

func (a *Account) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password))
}

func (a *Account) ChangePassword(newPassword string) error {
	var err error
	a.PasswordHash, err = bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if err != nil {
		return err
	}

	if _, err := db.Accounts.UpdateByID(
		context.TODO(),
		a.Id,
		bson.M{"$set": bson.M{"password": a.PasswordHash}},
	); err != nil {
		return err
	}

	return nil
}

// MarkEmailVerified records a successful email ticket verification.
func (a *Account) MarkEmailVerified() error {
	a.EmailVerified = true
	_, err := db.Accounts.UpdateByID(
		context.TODO(),
		a.Id,
		bson.M{"$set": bson.M{"email_verified": true}},
	)
	return err
}

func (a *Account) MfaMethods() []string {
	methodsMap := make(map[string]bool)
	for _, authenticator := range a.Authenticators {
		methodsMap[authenticator.Type] = true
	}

	methodsSlice := []string{}
	for method := range methodsMap {
		methodsSlice = append(methodsSlice, method)
	}
	return methodsSlice
}

func (a *Account) ResetRecoveryCode() error {
	recoveryCode := make([]byte, 5)
	if _, err := rand.Read(recoveryCode); err != nil {
		return err
	}
	a.RecoveryCode = hex.EncodeToString(recoveryCode)
	if _, err := db.Accounts.UpdateByID(
		context.TODO(),
		a.Id,
		bson.M{"$set": bson.M{"recovery_code": a.RecoveryCode}},
	); err != nil {
		return err
	}
	return nil
}
