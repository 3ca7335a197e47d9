package v0_rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/scholarsknowledge/server/pkg/files"
)

// Uploads are capped at 8 MiB.
const maxUploadSize = 8 << 20

func AttachmentsRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Post("/", uploadAttachment)
	r.Get("/{blobId}", getAttachment)

	return r
}

func uploadAttachment(w http.ResponseWriter, r *http.Request) {
	// Get authed user
	user := getAuthedUser(r)
	if user == nil {
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
		return
	}

	// User ratelimit
	userIdStr := strconv.FormatInt(user.Id, 10)
	if ratelimited("upload", "user", userIdStr) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	ratelimit(w, "upload", "user", userIdStr, 30, 300)

	// Read blob content
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		returnErr(w, http.StatusBadRequest, ErrBadRequest, nil)
		return
	}
	if len(data) == 0 {
		returnErr(w, http.StatusBadRequest, ErrBadRequest, nil)
		return
	}

	mime := r.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	// Store blob
	blob, err := files.Put(files.NewBlobId(), mime, user.Id, data)
	if err != nil {
		returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		return
	}

	returnData(w, http.StatusOK, UploadResp{
		Id:   blob.Id,
		Mime: blob.Mime,
		Size: int64(blob.Size),
	})
}

func getAttachment(w http.ResponseWriter, r *http.Request) {
	blob, err := files.Get(chi.URLParam(r, "blobId"))
	if err != nil {
		if err == files.ErrBlobNotFound {
			returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		} else {
			returnErr(w, http.StatusInternalServerError, ErrInternal, nil)
		}
		return
	}

	w.Header().Set("Content-Type", blob.Mime)
	w.Header().Set("Content-Length", strconv.Itoa(blob.Size))
	w.WriteHeader(http.StatusOK)
	w.Write(blob.Data)
}
