package safety

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
)
