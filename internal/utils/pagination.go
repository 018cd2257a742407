package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenops/lawncare-api/internal/constants"
	"github.com/greenops/lawncare-api/internal/response"
)

// ListQuery is a validated, normalized list query.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	Start    time.Time
	End      time.Time
}

// ListQueryOptions declares what a specific list endpoint accepts.
type ListQueryOptions struct {
	// DefaultPageSize overrides constants.DefaultPageSize when non-zero.
	DefaultPageSize int
	// Statuses is the set of valid status filter values; empty means the
	// endpoint has no status filter.
	Statuses []string
	// RequireRange demands start/end timestamps with start <= end.
	RequireRange bool
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseListQuery extracts and validates page/pageSize/search/status (and,
// for range endpoints, start/end) from the request. Page must be a positive
// integer and defaults to 1; pageSize defaults per endpoint and is clamped
// to constants.MaxPageSize.
func ParseListQuery(c *gin.Context, opts ListQueryOptions) (ListQuery, *response.APIError) {
	defaultPageSize := opts.DefaultPageSize
	if defaultPageSize == 0 {
		defaultPageSize = constants.DefaultPageSize
	}

	q := ListQuery{Page: constants.DefaultPage, PageSize: defaultPageSize}
	fields := map[string]string{}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields["page"] = "must be a positive integer"
		} else {
			q.Page = page
		}
	}

	if raw := c.Query("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			fields["pageSize"] = "must be a positive integer"
		} else {
			if pageSize > constants.MaxPageSize {
				pageSize = constants.MaxPageSize
			}
			q.PageSize = pageSize
		}
	}

	q.Search = strings.TrimSpace(c.Query("search"))

	if raw := c.Query("status"); raw != "" {
		if len(opts.Statuses) == 0 {
			fields["status"] = "filter not supported for this resource"
		} else if !contains(opts.Statuses, raw) {
			fields["status"] = "must be one of " + strings.Join(opts.Statuses, ", ")
		} else {
			q.Status = raw
		}
	}

	if opts.RequireRange {
		start, startOK := parseTimestamp(c.Query("start"))
		end, endOK := parseTimestamp(c.Query("end"))
		if !startOK {
			fields["start"] = "must be a valid timestamp"
		}
		if !endOK {
			fields["end"] = "must be a valid timestamp"
		}
		if startOK && endOK {
			if start.After(end) {
				fields["start"] = "start must be before end"
			} else {
				q.Start = start
				q.End = end
			}
		}
	}

	if len(fields) > 0 {
		return ListQuery{}, response.Validation("Validation failed.", fields)
	}
	return q, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
