package v0_rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scholarsknowledge/server/pkg/audience"
	"github.com/scholarsknowledge/server/pkg/posts"
	"github.com/scholarsknowledge/server/pkg/safety"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/structs"
	"github.com/scholarsknowledge/server/pkg/users"
)

func UsersRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", getUser)
	r.Get("/posts", getUserPosts)
	r.Post("/report", reportUser)

	return r
}

func getUser(w http.ResponseWriter, r *http.Request) {
	reqedUser, err := getUserByUrlParam(r, "username")
	if err != nil {
		if err == users.ErrUserNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	returnData(w, http.StatusOK, reqedUser.V0())
}

func getUserPosts(w http.ResponseWriter, r *http.Request) {
	reqedUser, err := getUserByUrlParam(r, "username")
	if err != nil {
		if err == users.ErrUserNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Anonymous requesters only see globally scoped posts
	var viewer audience.Viewer
	var requesterId *scholid.ScholID
	authedUser := getAuthedUser(r)
	if authedUser != nil {
		viewer = authedUser.Coords()
		requesterId = &authedUser.Id
	}

	// Get posts
	authored, err := posts.PostsByAuthor(reqedUser.Id, viewer)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Get pagination opts
	paginationOpts := PaginationOpts{Request: r}
	authored = posts.Page(authored, paginationOpts.Skip(), paginationOpts.Limit())

	v0posts := []structs.V0Post{}
	for _, p := range authored {
		v0posts = append(v0posts, p.V0(true, requesterId))
	}

	returnData(w, http.StatusOK, ListResp{
		Autoget: v0posts,
		Page:    paginationOpts.Page(),
	})
}

func reportUser(w http.ResponseWriter, r *http.Request) {
	var body CreateReportReq
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Reason == "" {
		body.Reason = "No reason provided"
	}

	reqedUser, err := getUserByUrlParam(r, "username")
	if err != nil {
		if err == users.ErrUserNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	authedUser := getAuthedUser(r)
	if authedUser == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	report, err := safety.CreateReport("user", reqedUser.Id, authedUser.Id, body.Reason, body.Comment)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, report.V0())
}
