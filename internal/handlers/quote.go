package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/constants"
	"github.com/greenops/lawncare-api/internal/middleware"
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/money"
	"github.com/greenops/lawncare-api/internal/repository"
	"github.com/greenops/lawncare-api/internal/response"
	"github.com/greenops/lawncare-api/internal/utils"
)

type QuoteHandler struct {
	quotes repository.QuoteRepository
	refs   repository.ReferenceChecker
}

func NewQuoteHandler(quotes repository.QuoteRepository, refs repository.ReferenceChecker) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, refs: refs}
}

// List returns a page of the organization's quotes. Search matches the
// title and the customer's name; status filters by the quote status enum.
func (h *QuoteHandler) List(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Fail(c, response.Unauthorized(""))
		return
	}

	q, apiErr := utils.ParseListQuery(c, utils.ListQueryOptions{
		DefaultPageSize: constants.CompactPageSize,
		Statuses:        models.QuoteStatuses,
	})
	if apiErr != nil {
		response.Fail(c, apiErr)
		return
	}

	quotes, total, err := h.quotes.List(authCtx.OrganizationID, q)
	if err != nil {
		response.HandleError(c, err, "Unable to fetch quotes.")
		return
	}

	response.OKWithMeta(c, quotes, response.Meta(q.Page, q.PageSize, total))
}

type lineItemRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

// Create creates a quote with its line items. The referenced customer (and
// property, when given) must belong to the caller's organization; derived
// monetary fields are always computed server-side.
func (h *QuoteHandler) Create(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Fail(c, response.Unauthorized(""))
		return
	}

	type createQuoteRequest struct {
		CustomerID uint64            `json:"customer_id" binding:"required"`
		PropertyID *uint64           `json:"property_id"`
		Title      string            `json:"title" binding:"required,max=255"`
		Notes      string            `json:"notes" binding:"omitempty,max=5000"`
		Tax        float64           `json:"tax" binding:"gte=0"`
		Items      []lineItemRequest `json:"items" binding:"required,min=1,dive"`
	}

	var req createQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, bindingError(err))
		return
	}

	exists, err := h.refs.CustomerExists(authCtx.OrganizationID, req.CustomerID)
	if err != nil {
		response.HandleError(c, err, "Unable to create quote.")
		return
	}
	if !exists {
		response.Fail(c, response.NotFound("Customer does not belong to this organization."))
		return
	}

	if req.PropertyID != nil {
		belongs, err := h.refs.PropertyBelongsToCustomer(authCtx.OrganizationID, req.CustomerID, *req.PropertyID)
		if err != nil {
			response.HandleError(c, err, "Unable to create quote.")
			return
		}
		if !belongs {
			response.Fail(c, response.NotFound("Property does not belong to this customer or organization."))
			return
		}
	}

	items := make([]models.QuoteItem, len(req.Items))
	lineTotals := make([]float64, len(req.Items))
	for i, item := range req.Items {
		lineTotal := money.LineTotal(item.Quantity, item.UnitPrice)
		items[i] = models.QuoteItem{
			OrganizationID: authCtx.OrganizationID,
			Name:           item.Name,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			LineTotal:      lineTotal,
		}
		lineTotals[i] = lineTotal
	}

	subtotal := money.Subtotal(lineTotals)
	tax := money.Round2(req.Tax)

	quote := models.Quote{
		OrganizationID: authCtx.OrganizationID,
		CustomerID:     req.CustomerID,
		PropertyID:     req.PropertyID,
		Title:          req.Title,
		Notes:          req.Notes,
		Status:         models.QuoteStatusDraft,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          money.Total(subtotal, tax),
		Items:          items,
	}

	if err := h.quotes.Create(&quote); err != nil {
		response.HandleError(c, err, "Unable to create quote.")
		return
	}

	created, err := h.quotes.FindByID(authCtx.OrganizationID, quote.ID)
	if err != nil {
		response.HandleError(c, err, "Unable to fetch quote.")
		return
	}

	response.Created(c, created)
}

// Get returns one quote with its relations.
func (h *QuoteHandler) Get(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Fail(c, response.Unauthorized(""))
		return
	}

	id, apiErr := parseIDParam(c)
	if apiErr != nil {
		response.Fail(c, apiErr)
		return
	}

	quote, err := h.quotes.FindByID(authCtx.OrganizationID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Fail(c, response.NotFound("Quote not found."))
		return
	}
	if err != nil {
		response.HandleError(c, err, "Unable to fetch quote.")
		return
	}

	response.OK(c, quote)
}
