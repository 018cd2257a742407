package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		total      int64
		totalPages int
	}{
		{"empty result still has one page", 1, 20, 0, 1},
		{"exact fit", 1, 20, 40, 2},
		{"remainder adds a page", 1, 10, 21, 3},
		{"single partial page", 2, 10, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := Meta(tt.page, tt.pageSize, tt.total)
			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.pageSize, meta.PageSize)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
		})
	}
}

func TestNewAPIErrorCodes(t *testing.T) {
	assert.Equal(t, CodeNotFound, NotFound("").Code)
	assert.Equal(t, CodeUnauthorized, Unauthorized("").Code)
	assert.Equal(t, CodeForbidden, Forbidden("").Code)
	assert.Equal(t, CodeConflict, Conflict("").Code)
	assert.Equal(t, CodeBadRequest, MissingOrgContext().Code)
	assert.Equal(t, CodeInternalServerError, Internal("").Code)
}
