package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/constants"
	"github.com/greenops/lawncare-api/internal/database"
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/response"
	"github.com/greenops/lawncare-api/internal/services"
)

// handlerSuite provides the in-memory database and request plumbing shared
// by the resource handler suites.
type handlerSuite struct {
	suite.Suite
	db *gorm.DB
}

func (s *handlerSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(s.db))

	gin.SetMode(gin.TestMode)
}

func (s *handlerSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// authedContext builds a request context with a resolved caller, the state
// the permission middleware leaves behind.
func (s *handlerSuite) authedContext(method, target string, body []byte, orgID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyAuth, &services.CallerContext{
		UserID:         1,
		OrganizationID: orgID,
		Role:           models.RoleOwner,
	})
	return c, w
}

func setIDParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

type testEnvelope struct {
	OK    bool                     `json:"ok"`
	Data  json.RawMessage          `json:"data"`
	Meta  *response.PaginationMeta `json:"meta"`
	Error *response.APIError       `json:"error"`
}

func (s *handlerSuite) decodeEnvelope(w *httptest.ResponseRecorder) testEnvelope {
	var env testEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func (s *handlerSuite) decodeData(w *httptest.ResponseRecorder, out any) testEnvelope {
	env := s.decodeEnvelope(w)
	s.Require().True(env.OK)
	s.Require().NoError(json.Unmarshal(env.Data, out))
	return env
}

func (s *handlerSuite) createOrganization(name, slug string) *models.Organization {
	org := &models.Organization{Name: name, Slug: slug}
	s.Require().NoError(s.db.Create(org).Error)
	return org
}

func (s *handlerSuite) createCustomer(orgID uint64, firstName, lastName, email string) *models.Customer {
	customer := &models.Customer{
		OrganizationID: orgID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
	}
	s.Require().NoError(s.db.Create(customer).Error)
	return customer
}

func (s *handlerSuite) createProperty(orgID, customerID uint64, address string) *models.Property {
	property := &models.Property{
		OrganizationID: orgID,
		CustomerID:     customerID,
		AddressLine1:   address,
	}
	s.Require().NoError(s.db.Create(property).Error)
	return property
}

func (s *handlerSuite) createJob(orgID, customerID uint64, title string) *models.Job {
	job := &models.Job{
		OrganizationID: orgID,
		CustomerID:     customerID,
		Title:          title,
	}
	s.Require().NoError(s.db.Create(job).Error)
	return job
}

func (s *handlerSuite) createVisit(orgID, jobID, propertyID uint64, scheduledFor time.Time, status models.VisitStatus) *models.Visit {
	visit := &models.Visit{
		OrganizationID: orgID,
		JobID:          jobID,
		PropertyID:     propertyID,
		ScheduledFor:   scheduledFor,
		Status:         status,
	}
	s.Require().NoError(s.db.Create(visit).Error)
	return visit
}
