package dto

import (
	"net/http"
	"strconv"
	"strings"

	"hotelier/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"

	// Duration-derived orderings for booking listings. They override SortBy:
	// sorting happens on the computed stay duration, not on a stored column.
	OrderByLongest  = "longest"
	OrderByShortest = "shortest"
)

type QueryParams struct {
	Page      int    `json:"page"      validate:"omitempty,min=1"`
	Limit     int    `json:"limit"     validate:"omitempty,min=1"`
	SortBy    string `json:"sortBy"    validate:"omitempty"`
	SortOrder string `json:"sortOrder" validate:"omitempty"`
	OrderBy   string `json:"orderBy"   validate:"omitempty"`
}

// FromRequest populates QueryParams from the HTTP request query string.
// With defaultRequest set, absent page/limit/sort parameters fall back to
// the listing defaults (page 1, limit 10, created_at DESC).
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortOrder := queryParams.Get(constant.RequestParamSortOrder); sortOrder != "" {
		q.SortOrder = strings.ToLower(sortOrder)
	}

	if orderBy := queryParams.Get(constant.RequestParamOrderBy); orderBy != "" {
		q.OrderBy = strings.ToLower(orderBy)
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}

		if q.SortBy == "" {
			q.SortBy = constant.DefaultValueSortBy
		}
	}
}

// SortDir maps the request's sortOrder to a SQL sort direction, defaulting
// to descending the way the listings always have.
func (q *QueryParams) SortDir() string {
	if q.SortOrder == "asc" {
		return SortDirAsc
	}

	return SortDirDesc
}

// DurationOrder reports the duration-derived ordering requested, if any.
// Both orderBy and sortOrder carry it, matching the two listing endpoints.
func (q *QueryParams) DurationOrder() (string, bool) {
	for _, v := range []string{q.OrderBy, q.SortOrder} {
		if v == OrderByLongest || v == OrderByShortest {
			return v, true
		}
	}

	return "", false
}
