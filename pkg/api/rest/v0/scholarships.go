package v0_rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/scholarsknowledge/server/pkg/emails"
	"github.com/scholarsknowledge/server/pkg/scholarships"
	"github.com/scholarsknowledge/server/pkg/structs"
	"github.com/scholarsknowledge/server/pkg/users"
)

func ScholarshipsRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", listScholarships)
	r.Post("/", createScholarship)
	r.Route("/{scholarshipId}", func(r chi.Router) {
		r.Get("/", getScholarship)
		r.Patch("/", updateScholarship)
		r.Put("/", updateScholarship)
		r.Delete("/", deleteScholarship)
	})

	return r
}

func getScholarshipByUrlParam(r *http.Request) (scholarships.Scholarship, error) {
	scholarshipId, _ := strconv.ParseInt(chi.URLParam(r, "scholarshipId"), 10, 64)
	return scholarships.GetScholarship(scholarshipId)
}

func listScholarships(w http.ResponseWriter, r *http.Request) {
	// Get pagination opts
	paginationOpts := PaginationOpts{Request: r}

	// Get listings
	listings, err := scholarships.ListScholarships(
		r.URL.Query().Get("continent"),
		r.URL.Query().Get("country"),
		paginationOpts.Skip(),
		paginationOpts.Limit(),
	)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	v0listings := []structs.V0Scholarship{}
	for _, s := range listings {
		v0listings = append(v0listings, s.V0())
	}

	returnData(w, http.StatusOK, ListResp{
		Autoget: v0listings,
		Page:    paginationOpts.Page(),
	})
}

func createScholarship(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Only lecturers and admins publish listings
	if user.Role != users.RoleLecturer && !user.HasFlag(users.FlagAdmin) {
		returnErr(w, http.StatusForbidden, ErrMissingPermissions, nil)
		return
	}

	// Decode body
	var body CreateScholarshipReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Create scholarship
	scholarship, err := scholarships.CreateScholarship(
		user.Id,
		body.Title,
		body.Partner,
		body.Description,
		body.Continent,
		body.Country,
		body.Amount,
		body.Deadline,
		body.Link,
	)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	// Notify opted-in users in the background
	go emails.SendScholarshipAlerts(scholarship.Continent, scholarship.Country)

	returnData(w, http.StatusOK, scholarship.V0())
}

func getScholarship(w http.ResponseWriter, r *http.Request) {
	scholarship, err := getScholarshipByUrlParam(r)
	if err != nil {
		if err == scholarships.ErrScholarshipNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	returnData(w, http.StatusOK, scholarship.V0())
}

func updateScholarship(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get scholarship
	scholarship, err := getScholarshipByUrlParam(r)
	if err != nil {
		if err == scholarships.ErrScholarshipNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Only the author or an admin may update
	if scholarship.AuthorId != user.Id && !user.HasFlag(users.FlagAdmin) {
		returnErr(w, http.StatusForbidden, ErrMissingPermissions, nil)
		return
	}

	// Decode body
	var body UpdateScholarshipReq
	if !decodeBody(w, r, &body) {
		return
	}

	// Update scholarship
	if err := scholarship.Update(scholarships.ScholarshipUpdate{
		Title:       body.Title,
		Partner:     body.Partner,
		Description: body.Description,
		Continent:   body.Continent,
		Country:     body.Country,
		Amount:      body.Amount,
		Deadline:    body.Deadline,
		Link:        body.Link,
	}); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, scholarship.V0())
}

func deleteScholarship(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// Get scholarship
	scholarship, err := getScholarshipByUrlParam(r)
	if err != nil {
		if err == scholarships.ErrScholarshipNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	// Only the author or an admin may delete
	if scholarship.AuthorId != user.Id && !user.HasFlag(users.FlagAdmin) {
		returnErr(w, http.StatusForbidden, ErrMissingPermissions, nil)
		return
	}

	// Delete scholarship
	if err := scholarship.Delete(); err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, BaseResp{})
}
