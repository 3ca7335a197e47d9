package users

import (
	"strings"
	"testing"
	"time"

	"github.com/scholarsknowledge/server/pkg/scholid"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	SessionSigningKey = []byte("test-session-signing-key")

	s := Session{
		Id:          scholid.GenId(),
		UserId:      scholid.GenId(),
		RefreshedAt: time.Now().UnixMilli(),
	}

	token, err := s.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	sessionId, refreshedAt, err := verifySessionToken(token)
	if err != nil {
		t.Fatalf("verifySessionToken() error = %v", err)
	}
	if sessionId != s.Id {
		t.Errorf("session id = %d, want %d", sessionId, s.Id)
	}
	if refreshedAt != s.RefreshedAt {
		t.Errorf("refreshed at = %d, want %d", refreshedAt, s.RefreshedAt)
	}
}

func TestVerifySessionToken(t *testing.T) {
	SessionSigningKey = []byte("test-session-signing-key")

	fresh := Session{Id: scholid.GenId(), RefreshedAt: time.Now().UnixMilli()}
	freshToken, _ := fresh.Token()

	expired := Session{Id: scholid.GenId(), RefreshedAt: time.Now().Add(-22 * 24 * time.Hour).UnixMilli()}
	expiredToken, _ := expired.Token()

	// sign with a different key
	SessionSigningKey = []byte("other-key")
	foreign := Session{Id: scholid.GenId(), RefreshedAt: time.Now().UnixMilli()}
	foreignToken, _ := foreign.Token()
	SessionSigningKey = []byte("test-session-signing-key")

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty token", token: "", wantErr: ErrInvalidTokenFormat},
		{name: "missing signature", token: strings.Split(freshToken, ".")[0], wantErr: ErrInvalidTokenFormat},
		{name: "not base64", token: "???.???", wantErr: ErrInvalidTokenFormat},
		{name: "wrong key", token: foreignToken, wantErr: ErrInvalidTokenSignature},
		{name: "expired", token: expiredToken, wantErr: ErrTokenExpired},
		{name: "valid", token: freshToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := verifySessionToken(tt.token); err != tt.wantErr {
				t.Errorf("verifySessionToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmailTicketRoundTrip(t *testing.T) {
	EmailTicketSigningKey = []byte("test-email-signing-key")

	userId := scholid.GenId()
	ticket, err := CreateEmailTicket(userId, "a.student@example.edu", TicketVerifyEmail)
	if err != nil {
		t.Fatalf("CreateEmailTicket() error = %v", err)
	}

	gotId, gotEmail, err := VerifyEmailTicket(ticket, TicketVerifyEmail)
	if err != nil {
		t.Fatalf("VerifyEmailTicket() error = %v", err)
	}
	if gotId != userId {
		t.Errorf("user id = %d, want %d", gotId, userId)
	}
	if gotEmail != "a.student@example.edu" {
		t.Errorf("email = %q, want %q", gotEmail, "a.student@example.edu")
	}
}

func TestVerifyEmailTicketErrors(t *testing.T) {
	EmailTicketSigningKey = []byte("test-email-signing-key")
	ticket, _ := CreateEmailTicket(scholid.GenId(), "a@b.c", TicketVerifyEmail)

	// tampered signature
	tampered := ticket[:len(ticket)-4] + "AAAA"

	tests := []struct {
		name    string
		ticket  string
		purpose string
		wantErr error
	}{
		{name: "garbage", ticket: "nope", purpose: TicketVerifyEmail, wantErr: ErrInvalidTicketFormat},
		{name: "tampered", ticket: tampered, purpose: TicketVerifyEmail, wantErr: ErrInvalidTicketSignature},
		{name: "wrong purpose", ticket: ticket, purpose: TicketRecoverPassword, wantErr: ErrTicketPurposeMismatch},
		{name: "valid", ticket: ticket, purpose: TicketVerifyEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := VerifyEmailTicket(tt.ticket, tt.purpose); err != tt.wantErr {
				t.Errorf("VerifyEmailTicket() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
