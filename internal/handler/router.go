package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/middleware"
	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/internal/service"
)

// Router bundles every handler so routes can be registered in one place.
type Router struct {
	Auth           *AuthHandler
	WorkRequests   *WorkRequestHandler
	Inspections    *InspectionHandler
	ActualWork     *ActualWorkHandler
	Accomplishment *AccomplishmentHandler
	Feedback       *FeedbackHandler
	Lookups        *LookupHandler
	Users          *UserHandler
	Manpower       *ManpowerHandler
	Reports        *ReportHandler
	Dashboard      *DashboardHandler
	Audit          *AuditHandler
	Metrics        *MetricsHandler

	AuthService *service.AuthService
}

// Register mounts all routes under the given API prefix.
func (rt *Router) Register(r *gin.Engine, apiPrefix string) {
	admin := string(models.RoleAdmin)
	head := string(models.RoleHead)
	staff := string(models.RoleStaff)

	r.GET("/health", rt.Metrics.Health)
	r.GET("/ready", rt.Metrics.Ready)
	r.GET("/metrics", rt.Metrics.Prometheus)

	api := r.Group(apiPrefix)

	api.POST("/auth/login", rt.Auth.Login)
	// Token-bearing download link; auth lives in the signed token itself.
	api.GET("/reports/download", rt.Reports.Download)

	secured := api.Group("", middleware.JWT(rt.AuthService))

	secured.POST("/auth/logout", rt.Auth.Logout)
	secured.POST("/auth/change-password", rt.Auth.ChangePassword)

	secured.POST("/requests", rt.WorkRequests.Create)
	secured.GET("/requests", rt.WorkRequests.List)
	secured.GET("/requests/:id", rt.WorkRequests.Get)
	secured.PUT("/requests/:id", middleware.RBAC(admin, head, staff), rt.WorkRequests.Update)
	secured.PATCH("/requests/:id/status", middleware.RBAC(admin, head, staff), rt.WorkRequests.UpdateStatus)
	secured.DELETE("/requests/:id", middleware.RBAC(admin), rt.WorkRequests.Archive)
	secured.GET("/requests/:id/accomplishment", rt.Accomplishment.GetByRequest)

	secured.POST("/inspections", middleware.RBAC(admin, head, staff), rt.Inspections.Create)
	secured.GET("/inspections", middleware.RBAC(admin, head, staff), rt.Inspections.List)
	secured.GET("/inspections/:id", middleware.RBAC(admin, head, staff), rt.Inspections.Get)
	secured.PUT("/inspections/:id", middleware.RBAC(admin, head, staff), rt.Inspections.Update)
	secured.DELETE("/inspections/:id", middleware.RBAC(admin), rt.Inspections.Archive)

	secured.POST("/actual-works", middleware.RBAC(admin, head, staff), rt.ActualWork.Create)
	secured.GET("/actual-works", middleware.RBAC(admin, head, staff), rt.ActualWork.List)
	secured.GET("/actual-works/:id", middleware.RBAC(admin, head, staff), rt.ActualWork.Get)
	secured.PUT("/actual-works/:id", middleware.RBAC(admin, head, staff), rt.ActualWork.Update)
	secured.DELETE("/actual-works/:id", middleware.RBAC(admin), rt.ActualWork.Archive)

	secured.POST("/accomplishments", middleware.RBAC(admin, head, staff), rt.Accomplishment.Upsert)
	secured.GET("/accomplishments", rt.Accomplishment.List)
	secured.GET("/accomplishments/:id", rt.Accomplishment.Get)

	secured.POST("/feedback", rt.Feedback.Upsert)
	secured.GET("/feedback", rt.Feedback.List)
	secured.GET("/feedback/lookup", rt.Feedback.GetByPair)

	secured.GET("/lookups/:kind", rt.Lookups.List)
	secured.GET("/lookups/:kind/:id", rt.Lookups.Get)
	secured.POST("/lookups/:kind", middleware.RBAC(admin), rt.Lookups.Create)
	secured.PUT("/lookups/:kind/:id", middleware.RBAC(admin), rt.Lookups.Update)
	secured.DELETE("/lookups/:kind/:id", middleware.RBAC(admin), rt.Lookups.Archive)

	secured.POST("/users", middleware.RBAC(admin), rt.Users.Create)
	secured.GET("/users", middleware.RBAC(admin), rt.Users.List)
	secured.GET("/users/:id", middleware.RBAC(admin, "SELF"), rt.Users.Get)
	secured.PUT("/users/:id", middleware.RBAC(admin, "SELF"), rt.Users.Update)
	secured.DELETE("/users/:id", middleware.RBAC(admin), rt.Users.Archive)

	secured.POST("/manpower", middleware.RBAC(admin, head), rt.Manpower.Create)
	secured.GET("/manpower", middleware.RBAC(admin, head, staff), rt.Manpower.List)
	secured.GET("/manpower/:id", middleware.RBAC(admin, head, staff), rt.Manpower.Get)
	secured.PUT("/manpower/:id", middleware.RBAC(admin, head), rt.Manpower.Update)
	secured.DELETE("/manpower/:id", middleware.RBAC(admin), rt.Manpower.Archive)

	secured.POST("/reports", middleware.RBAC(admin, head, staff), rt.Reports.Create)
	secured.GET("/reports/:id", middleware.RBAC(admin, head, staff), rt.Reports.Status)

	// Nil when the dashboard is switched off in config.
	if rt.Dashboard != nil {
		secured.GET("/dashboard/summary", middleware.RBAC(admin, head, staff), rt.Dashboard.Summary)
	}

	secured.GET("/audit", middleware.RBAC(admin), rt.Audit.List)
}
