package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/greenops/lawncare-api/internal/middleware"
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/repository"
	"github.com/greenops/lawncare-api/internal/response"
	"github.com/greenops/lawncare-api/internal/utils"
)

type VisitHandler struct {
	visits repository.VisitRepository
}

func NewVisitHandler(visits repository.VisitRepository) *VisitHandler {
	return &VisitHandler{visits: visits}
}

// List returns visits scheduled within the required start/end range,
// earliest first, with job (and its customer) and property expanded.
func (h *VisitHandler) List(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Fail(c, response.Unauthorized(""))
		return
	}

	q, apiErr := utils.ParseListQuery(c, utils.ListQueryOptions{
		Statuses:     models.VisitStatuses,
		RequireRange: true,
	})
	if apiErr != nil {
		response.Fail(c, apiErr)
		return
	}

	visits, total, err := h.visits.List(authCtx.OrganizationID, q)
	if err != nil {
		response.HandleError(c, err, "Unable to fetch visits.")
		return
	}

	response.OKWithMeta(c, visits, response.Meta(q.Page, q.PageSize, total))
}
