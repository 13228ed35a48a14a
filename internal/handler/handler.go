package handler

import (
	"net/http"
	"strconv"

	"github.com/askbox/askbox/internal/service"
)

// pageFromQuery reads limit/offset. Missing values fall back to the service
// defaults; malformed ones are reported as false.
func pageFromQuery(r *http.Request) (service.Page, bool) {
	var page service.Page
	query := r.URL.Query()

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return page, false
		}
		page.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return page, false
		}
		page.Offset = offset
	}
	return page.Clamp(), true
}

func writeInvalidPage(w http.ResponseWriter) {
	writeFailure(w, envelope{
		Error:  service.KindValidationFailed,
		Fields: map[string]string{"page": "numeric"},
	})
}
