package handlers

import (
	"errors"
	"time"

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

type InvoiceHandler struct {
	invoices repository.InvoiceRepository
	refs     repository.ReferenceChecker
}

func NewInvoiceHandler(invoices repository.InvoiceRepository, refs repository.ReferenceChecker) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, refs: refs}
}

// List returns a page of the organization's invoices. Search matches the
// customer's name and the invoice notes.
func (h *InvoiceHandler) List(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Fail(c, response.Unauthorized(""))
		return
	}

	q, apiErr := utils.ParseListQuery(c, utils.ListQueryOptions{
		DefaultPageSize: constants.CompactPageSize,
		Statuses:        models.InvoiceStatuses,
	})
	if apiErr != nil {
		response.Fail(c, apiErr)
		return
	}

	invoices, total, err := h.invoices.List(authCtx.OrganizationID, q)
	if err != nil {
		response.HandleError(c, err, "Unable to fetch invoices.")
		return
	}

	response.OKWithMeta(c, invoices, response.Meta(q.Page, q.PageSize, total))
}

// Create creates an invoice with its line items. Balance due starts at the
// computed total; amount paid starts at zero.
func (h *InvoiceHandler) Create(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Fail(c, response.Unauthorized(""))
		return
	}

	type createInvoiceRequest struct {
		CustomerID uint64            `json:"customer_id" binding:"required"`
		PropertyID *uint64           `json:"property_id"`
		JobID      *uint64           `json:"job_id"`
		IssueDate  *time.Time        `json:"issue_date"`
		DueDate    *time.Time        `json:"due_date"`
		Notes      string            `json:"notes" binding:"omitempty,max=5000"`
		Tax        float64           `json:"tax" binding:"gte=0"`
		Items      []lineItemRequest `json:"items" binding:"required,min=1,dive"`
	}

	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, bindingError(err))
		return
	}

	exists, err := h.refs.CustomerExists(authCtx.OrganizationID, req.CustomerID)
	if err != nil {
		response.HandleError(c, err, "Unable to create invoice.")
		return
	}
	if !exists {
		response.Fail(c, response.NotFound("Customer does not belong to this organization."))
		return
	}

	if req.PropertyID != nil {
		belongs, err := h.refs.PropertyBelongsToCustomer(authCtx.OrganizationID, req.CustomerID, *req.PropertyID)
		if err != nil {
			response.HandleError(c, err, "Unable to create invoice.")
			return
		}
		if !belongs {
			response.Fail(c, response.NotFound("Property does not belong to this customer or organization."))
			return
		}
	}

	if req.JobID != nil {
		belongs, err := h.refs.JobBelongsToCustomer(authCtx.OrganizationID, req.CustomerID, *req.JobID)
		if err != nil {
			response.HandleError(c, err, "Unable to create invoice.")
			return
		}
		if !belongs {
			response.Fail(c, response.NotFound("Job does not belong to this customer or organization."))
			return
		}
	}

	items := make([]models.InvoiceItem, len(req.Items))
	lineTotals := make([]float64, len(req.Items))
	for i, item := range req.Items {
		lineTotal := money.LineTotal(item.Quantity, item.UnitPrice)
		items[i] = models.InvoiceItem{
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
	total := money.Total(subtotal, tax)

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	invoice := models.Invoice{
		OrganizationID: authCtx.OrganizationID,
		CustomerID:     req.CustomerID,
		PropertyID:     req.PropertyID,
		JobID:          req.JobID,
		Status:         models.InvoiceStatusDraft,
		IssueDate:      issueDate,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          total,
		AmountPaid:     0,
		BalanceDue:     total,
		Items:          items,
	}

	if err := h.invoices.Create(&invoice); err != nil {
		response.HandleError(c, err, "Unable to create invoice.")
		return
	}

	created, err := h.invoices.FindByID(authCtx.OrganizationID, invoice.ID)
	if err != nil {
		response.HandleError(c, err, "Unable to fetch invoice.")
		return
	}

	response.Created(c, created)
}

// Get returns one invoice with its relations, payments included.
func (h *InvoiceHandler) Get(c *gin.Context) {
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

	invoice, err := h.invoices.FindByID(authCtx.OrganizationID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Fail(c, response.NotFound("Invoice not found."))
		return
	}
	if err != nil {
		response.HandleError(c, err, "Unable to fetch invoice.")
		return
	}

	response.OK(c, invoice)
}
