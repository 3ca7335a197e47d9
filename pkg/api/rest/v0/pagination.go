package v0_rest

import (
	"net/http"
	"strconv"
)

const defaultPaginationLimit = 25

type PaginationOpts struct {
	Request *http.Request
}

func (p PaginationOpts) Skip() int64 {
	page, err := strconv.ParseInt(p.Request.URL.Query().Get("page"), 10, 64)
	if err == nil && page > 1 {
		return (page - 1) * p.Limit()
	}

	return 0
}

func (p PaginationOpts) Limit() int64 {
	limit, err := strconv.ParseInt(p.Request.URL.Query().Get("limit"), 10, 64)
	if err == nil {
		// limit the limit to 100
		if limit > 100 {
			return 100
		}

		return limit
	}

	return defaultPaginationLimit
}

func (p PaginationOpts) Page() int64 {
	page, err := strconv.ParseInt(p.Request.URL.Query().Get("page"), 10, 64)
	if err == nil && page > 0 {
		return page
	}

	return 1
}
