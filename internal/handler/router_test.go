package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/fms-api/internal/service"
)

func registerTestRouter(dashboard *DashboardHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rt := &Router{
		Auth:           NewAuthHandler(nil),
		WorkRequests:   NewWorkRequestHandler(nil, nil),
		Inspections:    NewInspectionHandler(nil),
		ActualWork:     NewActualWorkHandler(nil),
		Accomplishment: NewAccomplishmentHandler(nil),
		Feedback:       NewFeedbackHandler(nil),
		Lookups:        NewLookupHandler(nil),
		Users:          NewUserHandler(nil),
		Manpower:       NewManpowerHandler(nil),
		Reports:        NewReportHandler(nil),
		Dashboard:      dashboard,
		Audit:          NewAuditHandler(nil),
		Metrics:        NewMetricsHandler(service.NewMetricsService(), nil, nil),
	}
	rt.Register(r, "/fms/v2")
	return r
}

func TestRouterSkipsDashboardWhenDisabled(t *testing.T) {
	r := registerTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fms/v2/dashboard/summary", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterMountsDashboardWhenEnabled(t *testing.T) {
	r := registerTestRouter(NewDashboardHandler(nil))

	// The route exists, so the request reaches the auth guard instead of 404.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fms/v2/dashboard/summary", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
