package main

import (
	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/dashboard"
	"github.com/complyark/dpdpa-portal/internal/dprequest"
	"github.com/complyark/dpdpa-portal/internal/grievance"
	"github.com/complyark/dpdpa-portal/internal/industry"
	"github.com/complyark/dpdpa-portal/internal/notification"
	"github.com/complyark/dpdpa-portal/internal/organization"
	"github.com/complyark/dpdpa-portal/internal/overdue"
	"github.com/complyark/dpdpa-portal/internal/status"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/log"
	"github.com/complyark/dpdpa-portal/internal/system/middleware"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/system/validation"
	"github.com/complyark/dpdpa-portal/internal/user"
)

// portalServices holds the initialized module services. Lifecycle services
// are kept so the overdue checker can drive their escalation sweeps.
type portalServices struct {
	status       status.StatusServiceInterface
	industry     industry.IndustryServiceInterface
	organization organization.OrganizationServiceInterface
	user         user.UserServiceInterface
	notification notification.NotificationServiceInterface
	request      dprequest.RequestServiceInterface
	grievance    grievance.GrievanceServiceInterface
	dashboard    dashboard.DashboardServiceInterface
}

// registerServices wires every module onto the gin engine. Staff routes sit
// behind the trusted-header auth context; the public group only carries the
// token-scoped submission endpoints.
func registerServices(engine *gin.Engine, registry *stores.StoreRegistry, cfg *config.Config) (*portalServices, error) {
	logger := log.GetLogger()

	if err := validation.RegisterCustomValidations(); err != nil {
		return nil, err
	}

	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	publicRg := engine.Group("/api/v1/public")
	staffRg := engine.Group("/api/v1")
	staffRg.Use(middleware.AuthContextMiddleware())

	services := &portalServices{}

	services.status = status.Initialize(staffRg, registry)
	logger.Info("Status module initialized")

	services.industry = industry.Initialize(staffRg, registry)
	logger.Info("Industry module initialized")

	services.organization = organization.Initialize(staffRg, registry)
	logger.Info("Organization module initialized")

	services.user = user.Initialize(staffRg, registry)
	logger.Info("User module initialized")

	notificationService, err := notification.Initialize(staffRg, registry, &cfg.Mail)
	if err != nil {
		return nil, err
	}
	services.notification = notificationService
	logger.Info("Notification module initialized")

	services.request = dprequest.Initialize(staffRg, publicRg, registry, notificationService, &cfg.Lifecycle)
	logger.Info("Request module initialized")

	services.grievance = grievance.Initialize(staffRg, publicRg, registry, notificationService, &cfg.Lifecycle)
	logger.Info("Grievance module initialized")

	services.dashboard = dashboard.Initialize(staffRg, registry, &cfg.Lifecycle)
	logger.Info("Dashboard module initialized")

	return services, nil
}

// newOverdueChecker builds the periodic escalation sweep over both
// lifecycle modules.
func newOverdueChecker(services *portalServices, cfg *config.Config) *overdue.Checker {
	return overdue.NewChecker(cfg.Lifecycle.OverdueCheckPeriod, map[string]overdue.Escalator{
		"requests":   services.request,
		"grievances": services.grievance,
	})
}
