package handlers

import (
	"net/http"

	"github.com/baechuer/events-api/internal/pagination"
	"github.com/baechuer/events-api/internal/transport/http/validate"
)

// Paging holds the ?limit= default and ceiling for list endpoints.
type Paging struct {
	Default int
	Max     int
}

func (p Paging) options(r *http.Request, total bool) (pagination.Options, error) {
	return validate.PageOptions(r, p.Default, p.Max, total)
}
