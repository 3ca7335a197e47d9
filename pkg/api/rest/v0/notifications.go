package v0_rest

import (
	"log"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/scholarsknowledge/server/pkg/notifications"
	"github.com/scholarsknowledge/server/pkg/structs"
)

func NotificationsRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", getNotifications)
	r.Get("/count", getUnseenCount)
	r.Post("/seen", markNotificationsSeen)
	r.Delete("/", clearNotifications)
	r.Get("/toast", getNextToast)

	return r
}

func getNotifications(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get unseen count; reading the tray doesn't mark seen, the client
	// does that explicitly via POST /seen
	unseen, err := notifications.UnseenCount(user)
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Get tray posts
	tray, err := notifications.Notifications(user)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	v0posts := []structs.V0Post{}
	for _, p := range tray {
		v0posts = append(v0posts, p.V0(true, &user.Id))
	}

	returnData(w, http.StatusOK, NotificationsResp{
		Unseen: unseen,
		Posts:  v0posts,
	})
}

func getUnseenCount(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get unseen count
	unseen, err := notifications.UnseenCount(user)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, UnseenCountResp{Unseen: unseen})
}

func markNotificationsSeen(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Advance the seen watermark
	if err := notifications.MarkSeen(user.Id); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, BaseResp{})
}

func clearNotifications(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Advance the clear watermark
	if err := notifications.ClearAll(user.Id); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, BaseResp{})
}

func getNextToast(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get next toast, if any
	post, err := notifications.NextToast(user)
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	resp := ToastResp{}
	if post != nil {
		v0 := post.V0(true, &user.Id)
		resp.Post = &v0
	}
	returnData(w, http.StatusOK, resp)
}
