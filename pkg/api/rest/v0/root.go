package v0_rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/networks"
	"github.com/scholarsknowledge/server/pkg/rdb"
)

func RootRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", root)
	r.Get("/status", getStatus)
	r.Get("/statistics", getStatistics)
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {})

	return r
}

func root(w http.ResponseWriter, r *http.Request) {
	returnData(w, http.StatusOK, BaseResp{Error: false})
}

func getStatus(w http.ResponseWriter, r *http.Request) {
	regsDisabled, err := rdb.Client.Exists(context.TODO(), "regsdisabled").Result()
	if err != nil {
		return
	}

	repairMode, err := rdb.Client.Exists(context.TODO(), "repairmode").Result()
	if err != nil {
		return
	}

	blocked, err := networks.IsBlocked(r.RemoteAddr)
	if err != nil {
		return
	}

	returnData(w, http.StatusOK, StatusResp{
		RegistrationEnabled: regsDisabled == 0,
		RepairMode:          repairMode == 1,
		IPBlocked:           blocked,
	})
}

func getStatistics(w http.ResponseWriter, _ *http.Request) {
	userCount, err := db.Users.EstimatedDocumentCount(context.TODO())
	if err != nil {
		return
	}

	studentPostCount, err := db.StudentPosts.EstimatedDocumentCount(context.TODO())
	if err != nil {
		return
	}

	lecturerPostCount, err := db.LecturerPosts.EstimatedDocumentCount(context.TODO())
	if err != nil {
		return
	}

	scholarshipCount, err := db.Scholarships.EstimatedDocumentCount(context.TODO())
	if err != nil {
		return
	}

	returnData(w, http.StatusOK, StatisticsResp{
		UserCount:        userCount,
		PostCount:        studentPostCount + lecturerPostCount,
		ScholarshipCount: scholarshipCount,
	})
}
