package v0_rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/scholarsknowledge/server/pkg/networks"
	"github.com/scholarsknowledge/server/pkg/safety"
	"github.com/scholarsknowledge/server/pkg/structs"
	"github.com/scholarsknowledge/server/pkg/users"
)

func AdminRouter() *chi.Mux {
	r := chi.NewRouter()

	// Admin flag check
	r.Use(func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getAuthedUser(r)
			if user == nil {
				returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
				return
			}
			if !user.HasFlag(users.FlagAdmin) {
				returnErr(w, http.StatusForbidden, ErrMissingPermissions, nil)
				return
			}

			h.ServeHTTP(w, r)
		})
	})

	r.Get("/reports", listReports)
	r.Get("/reports/{reportId}", getReport)
	r.Patch("/reports/{reportId}", updateReport)
	r.Post("/netblocks", createNetblock)

	return r
}

func listReports(w http.ResponseWriter, r *http.Request) {
	// Get pagination opts
	paginationOpts := PaginationOpts{Request: r}

	// Get reports
	reports, err := safety.ListReports(
		r.URL.Query().Get("status"),
		paginationOpts.Skip(),
		paginationOpts.Limit(),
	)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	v0reports := []structs.V0Report{}
	for _, report := range reports {
		v0reports = append(v0reports, report.V0())
	}

	returnData(w, http.StatusOK, ListResp{
		Autoget: v0reports,
		Page:    paginationOpts.Page(),
	})
}

func getReport(w http.ResponseWriter, r *http.Request) {
	reportId, _ := strconv.ParseInt(chi.URLParam(r, "reportId"), 10, 64)
	report, err := safety.GetReport(reportId)
	if err != nil {
		if err == safety.ErrReportNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	returnData(w, http.StatusOK, report.V0())
}

func updateReport(w http.ResponseWriter, r *http.Request) {
	// Decode body
	var body UpdateReportReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Get report
	reportId, _ := strconv.ParseInt(chi.URLParam(r, "reportId"), 10, 64)
	report, err := safety.GetReport(reportId)
	if err != nil {
		if err == safety.ErrReportNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Set status
	if err := report.SetStatus(body.Status); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, report.V0())
}

func createNetblock(w http.ResponseWriter, r *http.Request) {
	// Decode body
	var body CreateNetblockReq
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ExpiresAt == 0 {
		body.ExpiresAt = -1
	}

	// Create block
	entry, err := networks.CreateBlock(body.Address, body.ExpiresAt)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, map[string]interface{}{
		"error":      false,
		"id":         strconv.FormatInt(entry.Id, 10),
		"address":    entry.Address,
		"expires_at": entry.ExpiresAt,
	})
}
