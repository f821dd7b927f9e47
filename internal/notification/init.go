package notification

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/log"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Initialize sets up the notification module, seeding the stock templates
// on first start, and registers the template management routes.
func Initialize(rg *gin.RouterGroup, registry *stores.StoreRegistry, mailCfg *config.MailConfig) (NotificationServiceInterface, error) {
	registry.EmailTemplate = NewTemplateStore(registry.DBClient())

	sender, err := NewEmailSender(mailCfg)
	if err != nil {
		return nil, err
	}

	if err := seedDefaultTemplates(context.Background(), registry); err != nil {
		return nil, err
	}
	log.GetLogger().Debug("Email templates ready")

	service := newNotificationService(registry, sender)
	handler := newNotificationHandler(service)

	rg.GET("/email-templates", handler.handleListTemplates)
	rg.PUT("/email-templates/:templateName", handler.handleUpdateTemplate)

	return service, nil
}
