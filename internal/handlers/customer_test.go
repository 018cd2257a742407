package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/repository"
)

type CustomerHandlerTestSuite struct {
	handlerSuite
	handler *CustomerHandler
}

func (s *CustomerHandlerTestSuite) SetupTest() {
	s.handlerSuite.SetupTest()
	s.handler = NewCustomerHandler(repository.NewCustomerRepository(s.db))
}

func (s *CustomerHandlerTestSuite) TestList_Success() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	s.createCustomer(org.ID, "Grace", "Hopper", "grace@example.com")

	c, w := s.authedContext("GET", "/api/customers", nil, org.ID)
	s.handler.List(c)

	s.Equal(http.StatusOK, w.Code)

	var customers []models.Customer
	env := s.decodeData(w, &customers)
	s.Len(customers, 2)
	s.Require().NotNil(env.Meta)
	s.Equal(1, env.Meta.Page)
	s.Equal(20, env.Meta.PageSize)
	s.Equal(int64(2), env.Meta.Total)
	s.Equal(1, env.Meta.TotalPages)
}

func (s *CustomerHandlerTestSuite) TestList_ScopedToOrganization() {
	orgA := s.createOrganization("Org A", "org-a")
	orgB := s.createOrganization("Org B", "org-b")
	s.createCustomer(orgA.ID, "Ada", "Lovelace", "ada@example.com")
	s.createCustomer(orgB.ID, "Grace", "Hopper", "grace@example.com")

	c, w := s.authedContext("GET", "/api/customers", nil, orgA.ID)
	s.handler.List(c)

	var customers []models.Customer
	s.decodeData(w, &customers)
	s.Require().Len(customers, 1)
	s.Equal("Ada", customers[0].FirstName)
}

func (s *CustomerHandlerTestSuite) TestList_Search() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	s.createCustomer(org.ID, "Grace", "Hopper", "grace@example.com")

	c, w := s.authedContext("GET", "/api/customers?search=LOVE", nil, org.ID)
	s.handler.List(c)

	var customers []models.Customer
	env := s.decodeData(w, &customers)
	s.Require().Len(customers, 1)
	s.Equal("Lovelace", customers[0].LastName)
	s.Equal(int64(1), env.Meta.Total)
}

func (s *CustomerHandlerTestSuite) TestList_PageBeyondEnd() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")

	c, w := s.authedContext("GET", "/api/customers?page=5", nil, org.ID)
	s.handler.List(c)

	s.Equal(http.StatusOK, w.Code)
	var customers []models.Customer
	env := s.decodeData(w, &customers)
	s.Empty(customers)
	s.Equal(int64(1), env.Meta.Total)
	s.Equal(5, env.Meta.Page)
}

func (s *CustomerHandlerTestSuite) TestList_InvalidPage() {
	org := s.createOrganization("Green Thumb", "green-thumb")

	c, w := s.authedContext("GET", "/api/customers?page=0", nil, org.ID)
	s.handler.List(c)

	s.Equal(http.StatusBadRequest, w.Code)
	env := s.decodeEnvelope(w)
	s.False(env.OK)
	s.Equal("BAD_REQUEST", env.Error.Code)
}

func (s *CustomerHandlerTestSuite) TestCreate_Success() {
	org := s.createOrganization("Green Thumb", "green-thumb")

	body, _ := json.Marshal(map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"phone":      "555-0100",
	})
	c, w := s.authedContext("POST", "/api/customers", body, org.ID)
	s.handler.Create(c)

	s.Equal(http.StatusCreated, w.Code)
	var customer models.Customer
	s.decodeData(w, &customer)
	s.Equal("Ada", customer.FirstName)
	s.Equal(org.ID, customer.OrganizationID)
	s.NotZero(customer.ID)
	s.NotNil(customer.Properties)
}

func (s *CustomerHandlerTestSuite) TestCreate_MissingRequiredField() {
	org := s.createOrganization("Green Thumb", "green-thumb")

	body, _ := json.Marshal(map[string]any{"first_name": "Ada"})
	c, w := s.authedContext("POST", "/api/customers", body, org.ID)
	s.handler.Create(c)

	s.Equal(http.StatusBadRequest, w.Code)
	env := s.decodeEnvelope(w)
	s.False(env.OK)
	s.NotNil(env.Error.Details)
}

func (s *CustomerHandlerTestSuite) TestGet_Success() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	s.createProperty(org.ID, customer.ID, "12 Maple St")

	c, w := s.authedContext("GET", fmt.Sprintf("/api/customers/%d", customer.ID), nil, org.ID)
	setIDParam(c, customer.ID)
	s.handler.Get(c)

	s.Equal(http.StatusOK, w.Code)
	var got models.Customer
	s.decodeData(w, &got)
	s.Equal(customer.ID, got.ID)
	s.Len(got.Properties, 1)
}

func (s *CustomerHandlerTestSuite) TestGet_CrossTenantReadsAsNotFound() {
	orgA := s.createOrganization("Org A", "org-a")
	orgB := s.createOrganization("Org B", "org-b")
	customer := s.createCustomer(orgA.ID, "Ada", "Lovelace", "ada@example.com")

	c, w := s.authedContext("GET", fmt.Sprintf("/api/customers/%d", customer.ID), nil, orgB.ID)
	setIDParam(c, customer.ID)
	s.handler.Get(c)

	s.Equal(http.StatusNotFound, w.Code)
	env := s.decodeEnvelope(w)
	s.Equal("NOT_FOUND", env.Error.Code)
}

func (s *CustomerHandlerTestSuite) TestGet_InvalidID() {
	org := s.createOrganization("Green Thumb", "green-thumb")

	c, w := s.authedContext("GET", "/api/customers/abc", nil, org.ID)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	s.handler.Get(c)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *CustomerHandlerTestSuite) TestUpdate_Success() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")

	body, _ := json.Marshal(map[string]any{"phone": "555-0199"})
	c, w := s.authedContext("PATCH", fmt.Sprintf("/api/customers/%d", customer.ID), body, org.ID)
	setIDParam(c, customer.ID)
	s.handler.Update(c)

	s.Equal(http.StatusOK, w.Code)
	var got models.Customer
	s.decodeData(w, &got)
	s.Equal("555-0199", got.Phone)
	s.Equal("Ada", got.FirstName)
}

func (s *CustomerHandlerTestSuite) TestUpdate_EmptyBody() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")

	c, w := s.authedContext("PATCH", fmt.Sprintf("/api/customers/%d", customer.ID), []byte("{}"), org.ID)
	setIDParam(c, customer.ID)
	s.handler.Update(c)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *CustomerHandlerTestSuite) TestUpdate_CrossTenantReadsAsNotFound() {
	orgA := s.createOrganization("Org A", "org-a")
	orgB := s.createOrganization("Org B", "org-b")
	customer := s.createCustomer(orgA.ID, "Ada", "Lovelace", "ada@example.com")

	body, _ := json.Marshal(map[string]any{"phone": "555-0199"})
	c, w := s.authedContext("PATCH", fmt.Sprintf("/api/customers/%d", customer.ID), body, orgB.ID)
	setIDParam(c, customer.ID)
	s.handler.Update(c)

	s.Equal(http.StatusNotFound, w.Code)

	// the row is untouched
	var reloaded models.Customer
	s.Require().NoError(s.db.First(&reloaded, customer.ID).Error)
	s.Empty(reloaded.Phone)
}

func (s *CustomerHandlerTestSuite) TestDelete_Success() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")

	c, w := s.authedContext("DELETE", fmt.Sprintf("/api/customers/%d", customer.ID), nil, org.ID)
	setIDParam(c, customer.ID)
	s.handler.Delete(c)

	s.Equal(http.StatusOK, w.Code)

	err := s.db.First(&models.Customer{}, customer.ID).Error
	s.Error(err)
}

func (s *CustomerHandlerTestSuite) TestDelete_AlreadyDeleted() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")

	c, _ := s.authedContext("DELETE", fmt.Sprintf("/api/customers/%d", customer.ID), nil, org.ID)
	setIDParam(c, customer.ID)
	s.handler.Delete(c)

	c, w := s.authedContext("DELETE", fmt.Sprintf("/api/customers/%d", customer.ID), nil, org.ID)
	setIDParam(c, customer.ID)
	s.handler.Delete(c)

	s.Equal(http.StatusNotFound, w.Code)
}

func TestCustomerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}
