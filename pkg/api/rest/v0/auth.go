package v0_rest

import (
	"log"
	"net/http"
	"regexp"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/scholarsknowledge/server/pkg/emails"
	"github.com/scholarsknowledge/server/pkg/networks"
	"github.com/scholarsknowledge/server/pkg/structs"
	"github.com/scholarsknowledge/server/pkg/users"
)

var totpRegex = regexp.MustCompile(`[0-9]{6}$`)

func AuthRouter() *chi.Mux {
	r := chi.NewRouter()

	// IP block check
	r.Use(func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			blocked, err := networks.IsBlocked(r.RemoteAddr)
			if err != nil {
				sentry.CaptureException(err)
				returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
				return
			} else if blocked {
				returnErr(w, http.StatusForbidden, ErrIPBlocked, nil)
				return
			}

			h.ServeHTTP(w, r)
		})
	})

	r.Post("/login", login)
	r.Post("/register", register)
	r.Post("/verify-email", verifyEmail)
	r.Post("/recover", requestRecovery)
	r.Post("/reset-password", resetPassword)

	return r
}

func login(w http.ResponseWriter, r *http.Request) {
	// Decode body
	var body LoginReq
	if !decodeBody(w, r, &body) {
		return
	}

	// IP Ratelimit
	if ratelimited("login", "ip", r.RemoteAddr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	ratelimit(w, "login", "ip", r.RemoteAddr, 30, 900)

	// Get user
	user, err := users.GetUserByUsername(body.Username)
	if err == users.ErrUserNotFound {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"username": "Incorrect username/password.",
			"password": "Incorrect username/password.",
		})
		return
	} else if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Get account
	account, err := users.GetAccount(user.Id)
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Make sure user isn't deleted
	if user.HasFlag(users.FlagDeleted) {
		returnErr(w, http.StatusUnauthorized, ErrAccountDeleted, nil)
		return
	}

	// Make sure account isn't locked
	if user.HasFlag(users.FlagLocked) {
		returnErr(w, http.StatusUnauthorized, ErrAccountLocked, nil)
		return
	}

	// Extract the TOTP code if it's at the end of the password
	if body.TotpCode == "" {
		code := totpRegex.FindString(body.Password)
		if len(account.Authenticators) > 0 && code != "" && account.CheckTotp(code) {
			body.TotpCode = code
			body.Password = totpRegex.ReplaceAllString(body.Password, "")
		}
	}

	// Check password
	if err := account.CheckPassword(body.Password); err != nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"username": "Incorrect username/password.",
			"password": "Incorrect username/password.",
		})
		return
	}

	// Check MFA
	if len(account.Authenticators) > 0 {
		if body.TotpCode != "" {
			if !account.CheckTotp(body.TotpCode) {
				returnErr(w, http.StatusUnauthorized, ErrInvalidTOTPCode, map[string]string{
					"totp_code": "Incorrect TOTP code.",
				})
				return
			}
		} else if body.RecoveryCode != "" {
			if body.RecoveryCode != account.RecoveryCode {
				returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
					"mfa_recovery_code": "Incorrect recovery code.",
				})
				return
			}
			if err := account.ResetRecoveryCode(); err != nil {
				log.Println(err)
				sentry.CaptureException(err)
			}
		} else {
			returnData(w, http.StatusUnauthorized, ErrResp{
				Error:      true,
				Type:       ErrMFARequired.Error(),
				MFAMethods: account.MfaMethods(),
			})
			return
		}
	}

	// Create session
	session, err := users.CreateSession(user.Id, r.RemoteAddr, r.Header.Get("User-Agent"))
	if err != nil {
		log.Println(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Get session token
	token, err := session.Token()
	if err != nil {
		log.Println(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Get settings
	settings, err := users.GetSettings(user.Id)
	if err != nil {
		log.Println(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, AuthResp{
		Account: struct {
			structs.V0User
			structs.V0UserSettings
		}{
			V0User:         user.V0(),
			V0UserSettings: settings.V0(),
		},
		Session: session.V0(),
		Token:   token,
	})
}

func register(w http.ResponseWriter, r *http.Request) {
	// Decode body
	var body RegisterReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Check IP ratelimit
	if ratelimited("register_fail", "ip", r.RemoteAddr) || ratelimited("register_success", "ip", r.RemoteAddr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}

	// Create account
	account, user, err := users.CreateAccount(body.Username, body.Email, body.Password, body.Role)
	if err != nil {
		ratelimit(w, "register_fail", "ip", r.RemoteAddr, 5, 30)
		if err == users.ErrUsernameTaken {
			returnErr(w, http.StatusConflict, ErrUsernameExists, map[string]string{
				"username": "Username already taken.",
			})
		} else {
			log.Println(err)
			sentry.CaptureException(err)
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Success ratelimit
	ratelimit(w, "register_success", "ip", r.RemoteAddr, 3, 900)

	// Send verification email
	ticket, err := users.CreateEmailTicket(user.Id, account.Email, users.TicketVerifyEmail)
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
	} else {
		emails.SendEmail("verify", user.Username, account.Email, ticket)
	}

	// Create session
	session, err := users.CreateSession(user.Id, r.RemoteAddr, r.Header.Get("User-Agent"))
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Get session token
	token, err := session.Token()
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Get settings
	settings, err := users.GetSettings(user.Id)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, AuthResp{
		Account: struct {
			structs.V0User
			structs.V0UserSettings
		}{
			V0User:         user.V0(),
			V0UserSettings: settings.V0(),
		},
		Session: session.V0(),
		Token:   token,
	})
}

func verifyEmail(w http.ResponseWriter, r *http.Request) {
	// Decode body
	var body VerifyEmailReq
	if !decodeBody(w, r, &body) {
		return
	}

	// IP Ratelimit
	if ratelimited("verify_email", "ip", r.RemoteAddr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	ratelimit(w, "verify_email", "ip", r.RemoteAddr, 10, 900)

	// Verify ticket
	userId, email, err := users.VerifyEmailTicket(body.Token, users.TicketVerifyEmail)
	if err != nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"token": "Invalid or expired verification token.",
		})
		return
	}

	// Mark email verified
	account, err := users.GetAccount(userId)
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}
	if account.Email != email {
		// The account changed its email after the ticket was issued
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"token": "Invalid or expired verification token.",
		})
		return
	}
	if err := account.MarkEmailVerified(); err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, VerifyEmailResp{
		Error: false,
		Email: email,
	})
}

func requestRecovery(w http.ResponseWriter, r *http.Request) {
	// Decode body
	var body RecoverReq
	if !decodeBody(w, r, &body) {
		return
	}

	// IP Ratelimit
	if ratelimited("recover", "ip", r.RemoteAddr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	ratelimit(w, "recover", "ip", r.RemoteAddr, 5, 900)

	// Send recovery email. The response is identical whether or not the
	// address maps to an account.
	account, err := users.GetAccountByEmail(body.Email)
	if err == nil {
		user, err := users.GetUser(account.Id)
		if err == nil {
			ticket, err := users.CreateEmailTicket(account.Id, account.Email, users.TicketRecoverPassword)
			if err == nil {
				emails.SendEmail("recover", user.Username, account.Email, ticket)
			}
		}
	}

	returnData(w, http.StatusOK, BaseResp{})
}

func resetPassword(w http.ResponseWriter, r *http.Request) {
	// Decode body
	var body ResetPasswordReq
	if !decodeBody(w, r, &body) {
		return
	}

	// IP Ratelimit
	if ratelimited("recover", "ip", r.RemoteAddr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	ratelimit(w, "recover", "ip", r.RemoteAddr, 5, 900)

	// Verify ticket
	userId, email, err := users.VerifyEmailTicket(body.Token, users.TicketRecoverPassword)
	if err != nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"token": "Invalid or expired recovery token.",
		})
		return
	}

	// Get account
	account, err := users.GetAccount(userId)
	if err != nil || account.Email != email {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, map[string]string{
			"token": "Invalid or expired recovery token.",
		})
		return
	}

	// Change password and revoke existing sessions
	if err := account.ChangePassword(body.Password); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}
	if err := users.DeleteSessionsForUser(account.Id); err != nil {
		log.Println(err)
		sentry.CaptureException(err)
	}

	// Proving ownership of the mailbox verifies the address as a side
	// effect
	if !account.EmailVerified {
		if err := account.MarkEmailVerified(); err != nil {
			log.Println(err)
			sentry.CaptureException(err)
		}
	}

	if user, err := users.GetUser(account.Id); err == nil {
		emails.SendEmail("security_alert", user.Username, account.Email, "")
	}

	returnData(w, http.StatusOK, BaseResp{})
}
