package v0_rest

import (
	"github.com/go-chi/chi/v5"
)

func Router() *chi.Mux {
	r := chi.NewRouter()

	r.Mount("/", RootRouter())
	r.Mount("/auth", AuthRouter())
	r.Mount("/me", MeRouter())
	r.Mount("/users/{username}", UsersRouter())
	r.Mount("/feed", FeedRouter())
	r.Mount("/posts", PostsRouter())
	r.Mount("/notifications", NotificationsRouter())
	r.Mount("/scholarships", ScholarshipsRouter())
	r.Mount("/attachments", AttachmentsRouter())
	r.Mount("/admin", AdminRouter())

	return r
}
