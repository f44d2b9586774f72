package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const defaultPerPage = 25

// pageMeta describes the slice of a list a response carries.
type pageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func parsePageParam(c echo.Context) int {
	page := 1
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	return page
}

// paginate clamps page into range and returns the slice bounds plus the
// filled-in metadata.
func paginate(total, page, perPage int) (lo, hi int, meta pageMeta) {
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if page < 1 {
		page = 1
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	lo = (page - 1) * perPage
	hi = lo + perPage
	if hi > total {
		hi = total
	}
	if lo > total {
		lo = total
	}
	return lo, hi, pageMeta{Page: page, PerPage: perPage, TotalItems: total, TotalPages: totalPages}
}
