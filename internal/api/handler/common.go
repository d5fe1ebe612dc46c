package handler

import (
	"net/http"
	"strconv"

	"proctor_admin/internal/platform/config"
)

// pagination reads page/pageSize query params with configured bounds.
func pagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 || pageSize > config.AppConfig.MaxPageSize {
		pageSize = config.AppConfig.DefaultPageSize
	}
	return page, pageSize
}

// queryID reads an optional integer query parameter, zero when absent.
func queryID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	return id
}
