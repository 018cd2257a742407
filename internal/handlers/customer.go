package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/middleware"
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/repository"
	"github.com/greenops/lawncare-api/internal/response"
	"github.com/greenops/lawncare-api/internal/utils"
)

type CustomerHandler struct {
	customers repository.CustomerRepository
}

func NewCustomerHandler(customers repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List returns a page of the organization's customers. Search matches
// name, email and phone.
func (h *CustomerHandler) List(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Fail(c, response.Unauthorized(""))
		return
	}

	q, apiErr := utils.ParseListQuery(c, utils.ListQueryOptions{})
	if apiErr != nil {
		response.Fail(c, apiErr)
		return
	}

	customers, total, err := h.customers.List(authCtx.OrganizationID, q)
	if err != nil {
		response.HandleError(c, err, "Unable to fetch customers.")
		return
	}

	response.OKWithMeta(c, customers, response.Meta(q.Page, q.PageSize, total))
}

// Create creates a customer in the caller's organization.
func (h *CustomerHandler) Create(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Fail(c, response.Unauthorized(""))
		return
	}

	type createCustomerRequest struct {
		FirstName string `json:"first_name" binding:"required,max=100"`
		LastName  string `json:"last_name" binding:"required,max=100"`
		Email     string `json:"email" binding:"omitempty,email,max=255"`
		Phone     string `json:"phone" binding:"omitempty,max=40"`
		Notes     string `json:"notes" binding:"omitempty,max=5000"`
	}

	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, bindingError(err))
		return
	}

	customer := models.Customer{
		OrganizationID: authCtx.OrganizationID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Notes:          req.Notes,
		Properties:     []models.Property{},
	}

	if err := h.customers.Create(&customer); err != nil {
		response.HandleError(c, err, "Unable to create customer.")
		return
	}

	response.Created(c, customer)
}

// Get returns one customer with its properties.
func (h *CustomerHandler) Get(c *gin.Context) {
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

	customer, err := h.customers.FindByID(authCtx.OrganizationID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Fail(c, response.NotFound("Customer not found."))
		return
	}
	if err != nil {
		response.HandleError(c, err, "Unable to fetch customer.")
		return
	}

	response.OK(c, customer)
}

// Update applies a partial update. Zero rows affected means the customer
// does not exist in this tenant, which reads as 404 either way.
func (h *CustomerHandler) Update(c *gin.Context) {
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

	type updateCustomerRequest struct {
		FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
		LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
		Email     *string `json:"email" binding:"omitempty,email,max=255"`
		Phone     *string `json:"phone" binding:"omitempty,max=40"`
		Notes     *string `json:"notes" binding:"omitempty,max=5000"`
	}

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, bindingError(err))
		return
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		response.Fail(c, response.Validation("At least one field is required.", nil))
		return
	}

	rows, err := h.customers.Update(authCtx.OrganizationID, id, updates)
	if err != nil {
		response.HandleError(c, err, "Unable to update customer.")
		return
	}
	if rows == 0 {
		response.Fail(c, response.NotFound("Customer not found."))
		return
	}

	customer, err := h.customers.FindByID(authCtx.OrganizationID, id)
	if err != nil {
		response.HandleError(c, err, "Unable to fetch customer.")
		return
	}

	response.OK(c, customer)
}

// Delete removes one customer.
func (h *CustomerHandler) Delete(c *gin.Context) {
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

	rows, err := h.customers.Delete(authCtx.OrganizationID, id)
	if err != nil {
		response.HandleError(c, err, "Unable to delete customer.")
		return
	}
	if rows == 0 {
		response.Fail(c, response.NotFound("Customer not found."))
		return
	}

	response.OK(c, gin.H{"id": id})
}
