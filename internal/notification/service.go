package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/complyark/dpdpa-portal/internal/notification/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/log"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

// NotificationServiceInterface defines the contract for dispatching
// lifecycle notifications and managing templates.
type NotificationServiceInterface interface {
	Dispatch(ctx context.Context, notice *model.Notice) *serviceerror.ServiceError
	DispatchAsync(notice *model.Notice)
	ListTemplates(ctx context.Context) ([]model.EmailTemplate, *serviceerror.ServiceError)
	UpdateTemplate(ctx context.Context, name string, subject, bodyHTML string) (*model.EmailTemplate, *serviceerror.ServiceError)
}

// notificationService implements NotificationServiceInterface
type notificationService struct {
	stores *stores.StoreRegistry
	sender EmailSender
	logger *log.Logger
}

func newNotificationService(registry *stores.StoreRegistry, sender EmailSender) NotificationServiceInterface {
	return &notificationService{
		stores: registry,
		sender: sender,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "NotificationService")),
	}
}

// Dispatch renders the notice's template and delivers the email. A missing
// recipient is a silent no-op: not every entity carries a contact address.
func (s *notificationService) Dispatch(ctx context.Context, notice *model.Notice) *serviceerror.ServiceError {
	if notice.Recipient == "" {
		return nil
	}

	store := s.stores.EmailTemplate.(TemplateStore)
	template, err := store.GetByName(ctx, notice.TemplateName)
	if err != nil {
		if errors.Is(err, dbutils.ErrNotFound) {
			svcErr := serviceerror.CustomServiceError(
				serviceerror.ResourceNotFoundError,
				fmt.Sprintf("email template not found: %s", notice.TemplateName),
			)
			svcErr.Code = codes.TemplateNotFound
			return svcErr
		}
		return serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to load email template: %v", err),
		)
	}

	subject, err := renderTemplate(template.Subject, notice.Data)
	if err != nil {
		return serviceerror.CustomServiceError(
			serviceerror.NotificationError,
			fmt.Sprintf("failed to render subject of %s: %v", notice.TemplateName, err),
		)
	}
	htmlBody, err := renderTemplate(template.BodyHTML, notice.Data)
	if err != nil {
		return serviceerror.CustomServiceError(
			serviceerror.NotificationError,
			fmt.Sprintf("failed to render body of %s: %v", notice.TemplateName, err),
		)
	}

	message := &model.Message{
		To:       notice.Recipient,
		CC:       notice.CC,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: utils.StripHTMLTags(htmlBody),
	}

	if err := s.sender.Send(ctx, message); err != nil {
		return serviceerror.CustomServiceError(
			serviceerror.NotificationError,
			fmt.Sprintf("failed to deliver %s: %v", notice.TemplateName, err),
		)
	}

	s.logger.Info("Notification dispatched",
		log.String("template", notice.TemplateName),
		log.String("to", notice.Recipient),
	)
	return nil
}

// DispatchAsync delivers in the background. Delivery failures are logged,
// never propagated: a lifecycle change must not fail because mail did.
func (s *notificationService) DispatchAsync(notice *model.Notice) {
	go func() {
		if svcErr := s.Dispatch(context.Background(), notice); svcErr != nil {
			s.logger.Warn("Notification dispatch failed",
				log.String("template", notice.TemplateName),
				log.String("to", notice.Recipient),
				log.String("error", svcErr.ErrorDescription),
			)
		}
	}()
}

// ListTemplates returns all stored templates
func (s *notificationService) ListTemplates(ctx context.Context) ([]model.EmailTemplate, *serviceerror.ServiceError) {
	store := s.stores.EmailTemplate.(TemplateStore)
	templates, err := store.List(ctx)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to list templates: %v", err),
		)
	}
	return templates, nil
}

// UpdateTemplate replaces the subject and body of a named template
func (s *notificationService) UpdateTemplate(
	ctx context.Context,
	name string,
	subject, bodyHTML string,
) (*model.EmailTemplate, *serviceerror.ServiceError) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(bodyHTML) == "" {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ValidationError,
			"template subject and body must not be empty",
		)
	}

	store := s.stores.EmailTemplate.(TemplateStore)
	template, err := store.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, dbutils.ErrNotFound) {
			svcErr := serviceerror.CustomServiceError(
				serviceerror.ResourceNotFoundError,
				fmt.Sprintf("email template not found: %s", name),
			)
			svcErr.Code = codes.TemplateNotFound
			return nil, svcErr
		}
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to load template: %v", err),
		)
	}

	template.Subject = subject
	template.BodyHTML = bodyHTML
	err = s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Update(tx, template)
		},
	})
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to update template: %v", err),
		)
	}

	return template, nil
}

// seedDefaultTemplates installs the stock templates when the table is
// empty, so a fresh deployment notifies out of the box.
func seedDefaultTemplates(ctx context.Context, registry *stores.StoreRegistry) error {
	store := registry.EmailTemplate.(TemplateStore)
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []model.EmailTemplate{
		{
			TemplateName: model.TemplateCreation,
			Subject:      "Your {requestType} request #{requestId} has been received",
			BodyHTML: "<p>Dear {name},</p>" +
				"<p>{organizationName} has received your {requestType} request. " +
				"Your reference number is <b>#{requestId}</b>.</p>" +
				"<p>We will keep you informed as your request progresses.</p>",
		},
		{
			TemplateName: model.TemplateStatusChange,
			Subject:      "Your {requestType} request #{requestId} is now {statusName}",
			BodyHTML: "<p>Dear {name},</p>" +
				"<p>{organizationName} has moved your {requestType} request " +
				"<b>#{requestId}</b> to <b>{statusName}</b>.</p>",
		},
		{
			TemplateName: model.TemplateClosure,
			Subject:      "Your {requestType} request #{requestId} has been closed",
			BodyHTML: "<p>Dear {name},</p>" +
				"<p>{organizationName} has closed your {requestType} request <b>#{requestId}</b>.</p>" +
				"<p>Closure remarks: {closureComment}</p>",
		},
		{
			TemplateName: model.TemplateAssignment,
			Subject:      "{requestType} request #{requestId} assigned to you",
			BodyHTML: "<p>Dear {name},</p>" +
				"<p>The {requestType} request <b>#{requestId}</b> from {organizationName} " +
				"has been assigned to you.</p>",
		},
		{
			TemplateName: model.TemplateEscalation,
			Subject:      "{requestType} request #{requestId} has been escalated",
			BodyHTML: "<p>Dear {name},</p>" +
				"<p>The {requestType} request <b>#{requestId}</b> at {organizationName} " +
				"has been escalated and needs attention.</p>",
		},
	}

	return registry.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			for i := range defaults {
				if err := store.Create(tx, &defaults[i]); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
