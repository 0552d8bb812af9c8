package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// periodFromQuery reads ?month=&year= from the query string.
func periodFromQuery(r *http.Request) (month, year int, ok bool) {
	return parsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
}

// periodFromPath reads {month} and {year} route parameters.
func periodFromPath(r *http.Request) (month, year int, ok bool) {
	return parsePeriod(chi.URLParam(r, "month"), chi.URLParam(r, "year"))
}

func parsePeriod(monthStr, yearStr string) (int, int, bool) {
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return 0, 0, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}

// pageFromQuery parses page and limit, leaving zero for absent or invalid values.
func pageFromQuery(r *http.Request) (page, limit int) {
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	return page, limit
}
