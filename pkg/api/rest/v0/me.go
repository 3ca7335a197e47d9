package v0_rest

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/pquerna/otp/totp"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/emails"
	"github.com/scholarsknowledge/server/pkg/structs"
	"github.com/scholarsknowledge/server/pkg/users"
	"github.com/scholarsknowledge/server/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
)

func MeRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", getMe)
	r.Patch("/", updateProfile)
	r.Get("/settings", getSettings)
	r.Patch("/settings", updateSettings)
	r.Patch("/password", changePassword)
	r.Route("/authenticators", func(r chi.Router) {
		r.Get("/", getAuthenticators)
		r.Post("/", addAuthenticator)
		r.Delete("/{authenticatorId}", removeAuthenticator)
		r.Get("/totp-secret", getNewTotpSecret)
	})
	r.Post("/reset-mfa-recovery-code", resetRecoveryCode)
	r.Get("/sessions", getSessions)
	r.Delete("/sessions", revokeSessions)

	return r
}

func getMe(w http.ResponseWriter, r *http.Request) {
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	settings, err := users.GetSettings(user.Id)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, MeResp{
		V0User:         user.V0(),
		V0UserSettings: settings.V0(),
	})
}

func updateProfile(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Decode body
	var body UpdateProfileReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Update profile
	if err := user.UpdateProfile(users.ProfileUpdate{
		DisplayName: body.DisplayName,
		University:  body.University,
		Faculty:     body.Faculty,
		Program:     body.Program,
		Year:        body.Year,
		Continent:   body.Continent,
		Country:     body.Country,
	}); err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Emit event
	if err := users.EmitUpdateUserEvent(user); err != nil {
		log.Println(err)
		sentry.CaptureException(err)
	}

	returnData(w, http.StatusOK, MeResp{
		V0User: user.V0(),
	})
}

func getSettings(w http.ResponseWriter, r *http.Request) {
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	settings, err := users.GetSettings(user.Id)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, settings.V0())
}

func updateSettings(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Decode body
	var body UpdateSettingsReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Update settings
	settings, err := users.UpdateSettings(user.Id, users.SettingsUpdate{
		ShareWithPartners: body.ShareWithPartners,
		EmailUpdates:      body.EmailUpdates,
		FacultyOnlyFeed:   body.FacultyOnlyFeed,
	})
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, settings.V0())
}

func changePassword(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Decode body
	var body ChangePasswordReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Get account
	account, err := users.GetAccount(user.Id)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Check old password
	if err := account.CheckPassword(body.OldPassword); err != nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"old": "Incorrect password.",
		})
		return
	}

	// Change password
	if err := account.ChangePassword(body.NewPassword); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	if account.Email != "" {
		emails.SendEmail("security_alert", user.Username, account.Email, "")
	}

	returnData(w, http.StatusOK, BaseResp{})
}

func getAuthenticators(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get account
	account, err := users.GetAccount(user.Id)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Parse authenticators
	v0Authenticators := []*structs.V0Authenticator{}
	for _, authenticator := range account.Authenticators {
		v0Authenticators = append(v0Authenticators, authenticator.V0())
	}

	returnData(w, http.StatusOK, ListResp{
		Autoget: v0Authenticators,
		Page:    1,
		Pages:   1,
	})
}

func addAuthenticator(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get account
	account, err := users.GetAccount(user.Id)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Decode body
	var body AddAuthenticatorReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Check TOTP code
	if body.Type != "totp" || !totp.Validate(body.TotpCode, body.TotpSecret) {
		returnErr(w, http.StatusUnauthorized, ErrInvalidTOTPCode, map[string]string{
			"totp_code": "Invalid TOTP code.",
		})
		return
	}

	// Check password
	if err := account.CheckPassword(body.Password); err != nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"password": "Incorrect password.",
		})
		return
	}

	// Add authenticator
	authenticator, err := account.AddTotpAuthenticator(body.Nickname, body.TotpSecret)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, NewMfaResp{
		Authenticator: authenticator.V0(),
		RecoveryCode:  &account.RecoveryCode,
	})
}

func removeAuthenticator(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get account
	account, err := users.GetAccount(user.Id)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Decode body
	var body AccountVerificationReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Check password
	if err := account.CheckPassword(body.Password); err != nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"password": "Incorrect password.",
		})
		return
	}

	// Remove authenticator
	authenticatorId, _ := strconv.ParseInt(chi.URLParam(r, "authenticatorId"), 10, 64)
	if err := account.RemoveAuthenticator(authenticatorId); err != nil {
		if err == users.ErrAuthenticatorNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	returnData(w, http.StatusOK, BaseResp{})
}

func getNewTotpSecret(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Generate new TOTP secret
	totpSecret, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "ScholarsKnowledge",
		AccountName: user.Username,
	})
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, NewTotpSecretResp{
		Secret:          totpSecret.Secret(),
		ProvisioningUri: totpSecret.URL(),
		QRCodeSVG:       utils.GenerateSVGQRCode(totpSecret.URL()),
	})
}

func resetRecoveryCode(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Decode body
	var body AccountVerificationReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Get account
	account, err := users.GetAccount(user.Id)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Check password
	if err := account.CheckPassword(body.Password); err != nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"password": "Incorrect password.",
		})
		return
	}

	// Reset recovery code
	if err := account.ResetRecoveryCode(); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, NewMfaResp{
		RecoveryCode: &account.RecoveryCode,
	})
}

func getSessions(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get sessions
	cur, err := db.Sessions.Find(context.TODO(), bson.M{"user": user.Id})
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}
	var sessions []users.Session
	if err := cur.All(context.TODO(), &sessions); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Parse sessions
	v0Sessions := []structs.V0Session{}
	for _, session := range sessions {
		v0Sessions = append(v0Sessions, session.V0())
	}

	returnData(w, http.StatusOK, ListResp{
		Autoget: v0Sessions,
		Page:    1,
		Pages:   1,
	})
}

func revokeSessions(w http.ResponseWriter, r *http.Request) {
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	if err := users.DeleteSessionsForUser(user.Id); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, BaseResp{})
}
