package v0_rest

import (
	"log"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/scholarsknowledge/server/pkg/audience"
	"github.com/scholarsknowledge/server/pkg/posts"
	"github.com/scholarsknowledge/server/pkg/safety"
	"github.com/scholarsknowledge/server/pkg/structs"
	"github.com/scholarsknowledge/server/pkg/users"
)

func FeedRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", getFeed)

	return r
}

func PostsRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Post("/", createPost)
	r.Route("/{postId}", func(r chi.Router) {
		r.Get("/", getPost)
		r.Delete("/", deletePost)
		r.Post("/like", likePost)
		r.Delete("/like", unlikePost)
		r.Post("/report", reportPost)
		r.Route("/comments", func(r chi.Router) {
			r.Post("/", createComment)
			r.Delete("/{commentId}", deleteComment)
			r.Post("/{commentId}/replies", createReply)
		})
	})

	return r
}

func parseAttachments(v0atts []V0Att) []posts.Attachment {
	attachments := []posts.Attachment{}
	for _, a := range v0atts {
		attachments = append(attachments, posts.Attachment{
			Id:    a.Id,
			Name:  a.Name,
			Mime:  a.Mime,
			Thumb: a.Thumb,
		})
	}
	return attachments
}

func getPostByUrlParam(r *http.Request) (posts.Post, error) {
	postId, _ := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	return posts.GetPost(postId)
}

func getFeed(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get settings for the faculty-only toggle
	settings, err := users.GetSettings(user.Id)
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Get pagination opts
	paginationOpts := PaginationOpts{Request: r}

	// Get feed
	feed, err := posts.FeedForViewer(user.Coords(), settings.FacultyOnlyFeed, paginationOpts.Skip(), paginationOpts.Limit())
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	v0posts := []structs.V0Post{}
	for _, p := range feed {
		v0posts = append(v0posts, p.V0(true, &user.Id))
	}

	returnData(w, http.StatusOK, FeedResp{
		Autoget: v0posts,
		Page:    paginationOpts.Page(),
	})
}

func createPost(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Decode body
	var body CreatePostReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Check post type
	if !posts.ValidType(body.Type) {
		returnErr(w, http.StatusBadRequest, ErrBadRequest, map[string]string{
			"type": "Unknown post type.",
		})
		return
	}

	// User ratelimit
	userIdStr := strconv.FormatInt(user.Id, 10)
	if ratelimited("create_post", "user", userIdStr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	ratelimit(w, "create_post", "user", userIdStr, 10, 60)

	// Create post. A malformed audience key parses to an audience that
	// matches nobody; the write is accepted either way.
	post, err := posts.CreatePost(
		user.Id,
		user.Role,
		audience.ParseKey(body.Audience),
		body.Type,
		body.Title,
		body.Html,
		parseAttachments(body.Images),
		parseAttachments(body.Files),
	)
	if err != nil {
		if err == posts.ErrInvalidPostType {
			returnErr(w, http.StatusBadRequest, ErrBadRequest, nil)
		} else {
			log.Println(err)
			sentry.CaptureException(err)
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	returnData(w, http.StatusOK, post.V0(true, &user.Id))
}

func getPost(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get post
	post, err := getPostByUrlParam(r)
	if err != nil {
		if err == posts.ErrPostNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Check visibility
	if !post.Audience.IsVisible(user.Coords()) && post.AuthorId != user.Id {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	returnData(w, http.StatusOK, post.V0(true, &user.Id))
}

func deletePost(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get post
	post, err := getPostByUrlParam(r)
	if err != nil {
		if err == posts.ErrPostNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Only the author or an admin may delete
	if post.AuthorId != user.Id && !user.HasFlag(users.FlagAdmin) {
		returnErr(w, http.StatusForbidden, ErrMissingPermissions, nil)
		return
	}

	// Delete post
	if err := post.Delete(); err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, BaseResp{})
}

func likePost(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get post
	post, err := getPostByUrlParam(r)
	if err != nil {
		if err == posts.ErrPostNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Check visibility
	if !post.Audience.IsVisible(user.Coords()) {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	// Like post
	if err := post.Like(user.Id); err != nil && err != posts.ErrAlreadyLiked {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, post.V0(false, &user.Id))
}

func unlikePost(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get post
	post, err := getPostByUrlParam(r)
	if err != nil {
		if err == posts.ErrPostNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Unlike post
	if err := post.Unlike(user.Id); err != nil && err != posts.ErrNotLiked {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, post.V0(false, &user.Id))
}

func reportPost(w http.ResponseWriter, r *http.Request) {
	// Decode body
	var body CreateReportReq
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Reason == "" {
		body.Reason = "No reason provided"
	}

	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get post
	post, err := getPostByUrlParam(r)
	if err != nil {
		if err == posts.ErrPostNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Create report
	report, err := safety.CreateReport("post", post.Id, user.Id, body.Reason, body.Comment)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, report.V0())
}

func createComment(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Decode body
	var body CreateCommentReq
	if !decodeBody(w, r, &body) {
		return
	}

	// User ratelimit
	userIdStr := strconv.FormatInt(user.Id, 10)
	if ratelimited("create_comment", "user", userIdStr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	ratelimit(w, "create_comment", "user", userIdStr, 20, 60)

	// Get post
	post, err := getPostByUrlParam(r)
	if err != nil {
		if err == posts.ErrPostNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Check visibility
	if !post.Audience.IsVisible(user.Coords()) && post.AuthorId != user.Id {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	// Add comment
	comment, err := post.AddComment(
		user.Id,
		user.DisplayName,
		user.Program,
		body.Text,
		parseAttachments(body.Images),
		parseAttachments(body.Files),
	)
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, comment.V0())
}

func deleteComment(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get post
	post, err := getPostByUrlParam(r)
	if err != nil {
		if err == posts.ErrPostNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Get comment
	commentId, _ := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	comment, err := post.GetComment(commentId)
	if err != nil {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	// Only the comment author, the post author or an admin may delete
	if comment.AuthorId != user.Id && post.AuthorId != user.Id && !user.HasFlag(users.FlagAdmin) {
		returnErr(w, http.StatusForbidden, ErrMissingPermissions, nil)
		return
	}

	// Delete comment
	if err := post.DeleteComment(commentId); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, BaseResp{})
}

func createReply(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Decode body
	var body CreateCommentReq
	if !decodeBody(w, r, &body) {
		return
	}

	// User ratelimit
	userIdStr := strconv.FormatInt(user.Id, 10)
	if ratelimited("create_comment", "user", userIdStr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	ratelimit(w, "create_comment", "user", userIdStr, 20, 60)

	// Get post
	post, err := getPostByUrlParam(r)
	if err != nil {
		if err == posts.ErrPostNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Check visibility
	if !post.Audience.IsVisible(user.Coords()) && post.AuthorId != user.Id {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	// Add reply
	commentId, _ := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	reply, err := post.AddReply(
		commentId,
		user.Id,
		user.DisplayName,
		user.Program,
		body.Text,
		parseAttachments(body.Images),
		parseAttachments(body.Files),
	)
	if err != nil {
		if err == posts.ErrCommentNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	returnData(w, http.StatusOK, reply.V0())
}
