package scholarships

import "errors"

var (
	ErrScholarshipNotFound = errors.New("scholarship not found")
)
