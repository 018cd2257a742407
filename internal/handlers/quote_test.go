package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/repository"
)

type QuoteHandlerTestSuite struct {
	handlerSuite
	handler *QuoteHandler
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	s.handlerSuite.SetupTest()
	s.handler = NewQuoteHandler(
		repository.NewQuoteRepository(s.db),
		repository.NewReferenceChecker(s.db),
	)
}

func (s *QuoteHandlerTestSuite) createQuote(orgID, customerID uint64, title string, status models.QuoteStatus) *models.Quote {
	quote := &models.Quote{
		OrganizationID: orgID,
		CustomerID:     customerID,
		Title:          title,
		Status:         status,
	}
	s.Require().NoError(s.db.Create(quote).Error)
	return quote
}

func (s *QuoteHandlerTestSuite) TestCreate_ComputesTotals() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")

	body, _ := json.Marshal(map[string]any{
		"customer_id": customer.ID,
		"title":       "Spring cleanup",
		"tax":         10,
		"items": []map[string]any{
			{"name": "Mowing", "quantity": 2, "unit_price": 60},
			{"name": "Edging", "quantity": 1, "unit_price": 45},
		},
	})
	c, w := s.authedContext("POST", "/api/quotes", body, org.ID)
	s.handler.Create(c)

	s.Equal(http.StatusCreated, w.Code)
	var quote models.Quote
	s.decodeData(w, &quote)
	s.Equal(models.QuoteStatusDraft, quote.Status)
	s.Equal(165.0, quote.Subtotal)
	s.Equal(10.0, quote.Tax)
	s.Equal(175.0, quote.Total)
	s.Require().Len(quote.Items, 2)
	s.Equal(120.0, quote.Items[0].LineTotal)
	s.Equal(45.0, quote.Items[1].LineTotal)
	s.Equal(customer.ID, quote.Customer.ID)
}

func (s *QuoteHandlerTestSuite) TestCreate_WithProperty() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	property := s.createProperty(org.ID, customer.ID, "12 Maple St")

	body, _ := json.Marshal(map[string]any{
		"customer_id": customer.ID,
		"property_id": property.ID,
		"title":       "Hedge trim",
		"items": []map[string]any{
			{"name": "Trimming", "quantity": 1, "unit_price": 80},
		},
	})
	c, w := s.authedContext("POST", "/api/quotes", body, org.ID)
	s.handler.Create(c)

	s.Equal(http.StatusCreated, w.Code)
	var quote models.Quote
	s.decodeData(w, &quote)
	s.Require().NotNil(quote.PropertyID)
	s.Equal(property.ID, *quote.PropertyID)
	s.Equal(80.0, quote.Total)
}

func (s *QuoteHandlerTestSuite) TestCreate_CustomerFromOtherOrganization() {
	orgA := s.createOrganization("Org A", "org-a")
	orgB := s.createOrganization("Org B", "org-b")
	foreign := s.createCustomer(orgA.ID, "Ada", "Lovelace", "ada@example.com")

	body, _ := json.Marshal(map[string]any{
		"customer_id": foreign.ID,
		"title":       "Spring cleanup",
		"items": []map[string]any{
			{"name": "Mowing", "quantity": 1, "unit_price": 60},
		},
	})
	c, w := s.authedContext("POST", "/api/quotes", body, orgB.ID)
	s.handler.Create(c)

	s.Equal(http.StatusNotFound, w.Code)

	// nothing persisted
	var count int64
	s.db.Model(&models.Quote{}).Count(&count)
	s.Zero(count)
}

func (s *QuoteHandlerTestSuite) TestCreate_PropertyOfAnotherCustomer() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	other := s.createCustomer(org.ID, "Grace", "Hopper", "grace@example.com")
	property := s.createProperty(org.ID, other.ID, "99 Oak Ave")

	body, _ := json.Marshal(map[string]any{
		"customer_id": customer.ID,
		"property_id": property.ID,
		"title":       "Spring cleanup",
		"items": []map[string]any{
			{"name": "Mowing", "quantity": 1, "unit_price": 60},
		},
	})
	c, w := s.authedContext("POST", "/api/quotes", body, org.ID)
	s.handler.Create(c)

	s.Equal(http.StatusNotFound, w.Code)

	var count int64
	s.db.Model(&models.Quote{}).Count(&count)
	s.Zero(count)
}

func (s *QuoteHandlerTestSuite) TestCreate_RequiresItems() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")

	body, _ := json.Marshal(map[string]any{
		"customer_id": customer.ID,
		"title":       "Spring cleanup",
		"items":       []map[string]any{},
	})
	c, w := s.authedContext("POST", "/api/quotes", body, org.ID)
	s.handler.Create(c)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *QuoteHandlerTestSuite) TestList_DefaultsToCompactPageSize() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	for i := 0; i < 12; i++ {
		s.createQuote(org.ID, customer.ID, fmt.Sprintf("Quote %d", i), models.QuoteStatusDraft)
	}

	c, w := s.authedContext("GET", "/api/quotes", nil, org.ID)
	s.handler.List(c)

	s.Equal(http.StatusOK, w.Code)
	var quotes []models.Quote
	env := s.decodeData(w, &quotes)
	s.Len(quotes, 10)
	s.Equal(10, env.Meta.PageSize)
	s.Equal(int64(12), env.Meta.Total)
	s.Equal(2, env.Meta.TotalPages)
}

func (s *QuoteHandlerTestSuite) TestList_StatusFilter() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	s.createQuote(org.ID, customer.ID, "Draft quote", models.QuoteStatusDraft)
	s.createQuote(org.ID, customer.ID, "Sent quote", models.QuoteStatusSent)

	c, w := s.authedContext("GET", "/api/quotes?status=SENT", nil, org.ID)
	s.handler.List(c)

	var quotes []models.Quote
	s.decodeData(w, &quotes)
	s.Require().Len(quotes, 1)
	s.Equal(models.QuoteStatusSent, quotes[0].Status)
}

func (s *QuoteHandlerTestSuite) TestList_InvalidStatus() {
	org := s.createOrganization("Green Thumb", "green-thumb")

	c, w := s.authedContext("GET", "/api/quotes?status=BOGUS", nil, org.ID)
	s.handler.List(c)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *QuoteHandlerTestSuite) TestList_SearchMatchesCustomerName() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	ada := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	grace := s.createCustomer(org.ID, "Grace", "Hopper", "grace@example.com")
	s.createQuote(org.ID, ada.ID, "Spring cleanup", models.QuoteStatusDraft)
	s.createQuote(org.ID, grace.ID, "Fall cleanup", models.QuoteStatusDraft)

	c, w := s.authedContext("GET", "/api/quotes?search=hopper", nil, org.ID)
	s.handler.List(c)

	var quotes []models.Quote
	s.decodeData(w, &quotes)
	s.Require().Len(quotes, 1)
	s.Equal("Fall cleanup", quotes[0].Title)
}

func (s *QuoteHandlerTestSuite) TestGet_Success() {
	org := s.createOrganization("Green Thumb", "green-thumb")
	customer := s.createCustomer(org.ID, "Ada", "Lovelace", "ada@example.com")
	quote := s.createQuote(org.ID, customer.ID, "Spring cleanup", models.QuoteStatusDraft)

	c, w := s.authedContext("GET", fmt.Sprintf("/api/quotes/%d", quote.ID), nil, org.ID)
	setIDParam(c, quote.ID)
	s.handler.Get(c)

	s.Equal(http.StatusOK, w.Code)
	var got models.Quote
	s.decodeData(w, &got)
	s.Equal(quote.ID, got.ID)
}

func (s *QuoteHandlerTestSuite) TestGet_CrossTenantReadsAsNotFound() {
	orgA := s.createOrganization("Org A", "org-a")
	orgB := s.createOrganization("Org B", "org-b")
	customer := s.createCustomer(orgA.ID, "Ada", "Lovelace", "ada@example.com")
	quote := s.createQuote(orgA.ID, customer.ID, "Spring cleanup", models.QuoteStatusDraft)

	c, w := s.authedContext("GET", fmt.Sprintf("/api/quotes/%d", quote.ID), nil, orgB.ID)
	setIDParam(c, quote.ID)
	s.handler.Get(c)

	s.Equal(http.StatusNotFound, w.Code)
}

func TestQuoteHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}
