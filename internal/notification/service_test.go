package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyark/dpdpa-portal/internal/notification/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/system/stores/storetest"
)

// fakeTemplateStore is an in-memory TemplateStore
type fakeTemplateStore struct {
	templates map[string]*model.EmailTemplate
	nextID    int64
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{templates: map[string]*model.EmailTemplate{}, nextID: 1}
}

func (f *fakeTemplateStore) Create(tx dbmodel.TxInterface, template *model.EmailTemplate) error {
	template.TemplateID = f.nextID
	f.nextID++
	copied := *template
	f.templates[template.TemplateName] = &copied
	return nil
}

func (f *fakeTemplateStore) GetByName(ctx context.Context, name string) (*model.EmailTemplate, error) {
	template, ok := f.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %w", dbutils.ErrNotFound)
	}
	copied := *template
	return &copied, nil
}

func (f *fakeTemplateStore) List(ctx context.Context) ([]model.EmailTemplate, error) {
	var result []model.EmailTemplate
	for _, template := range f.templates {
		result = append(result, *template)
	}
	return result, nil
}

func (f *fakeTemplateStore) Update(tx dbmodel.TxInterface, template *model.EmailTemplate) error {
	for name, existing := range f.templates {
		if existing.TemplateID == template.TemplateID {
			copied := *template
			f.templates[name] = &copied
			return nil
		}
	}
	return fmt.Errorf("template %w", dbutils.ErrNotFound)
}

func (f *fakeTemplateStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.templates)), nil
}

// capturingSender records delivered messages
type capturingSender struct {
	sent []*model.Message
	fail error
}

func (c *capturingSender) Send(ctx context.Context, message *model.Message) error {
	if c.fail != nil {
		return c.fail
	}
	c.sent = append(c.sent, message)
	return nil
}

func setupNotificationService(t *testing.T) (NotificationServiceInterface, *fakeTemplateStore, *capturingSender) {
	t.Helper()
	registry := stores.NewStoreRegistry(storetest.NewFakeDBClient())
	store := newFakeTemplateStore()
	registry.EmailTemplate = store
	sender := &capturingSender{}
	return newNotificationService(registry, sender), store, sender
}

func TestDispatch_RendersAndSends(t *testing.T) {
	service, store, sender := setupNotificationService(t)

	require.NoError(t, store.Create(nil, &model.EmailTemplate{
		TemplateName: model.TemplateCreation,
		Subject:      "Request #{requestId} received",
		BodyHTML:     "<p>Dear {name}, {organizationName} received your {requestType} request.</p>",
	}))

	svcErr := service.Dispatch(context.Background(), &model.Notice{
		TemplateName: model.TemplateCreation,
		Recipient:    "asha@example.com",
		CC:           []string{"dpo@acme.example"},
		Data: map[string]string{
			"requestId":        "42",
			"name":             "Asha Rao",
			"organizationName": "Acme Ltd",
			"requestType":      "Access",
		},
	})
	require.Nil(t, svcErr)

	require.Len(t, sender.sent, 1)
	message := sender.sent[0]
	assert.Equal(t, "asha@example.com", message.To)
	assert.Equal(t, []string{"dpo@acme.example"}, message.CC)
	assert.Equal(t, "Request #42 received", message.Subject)
	assert.Contains(t, message.HTMLBody, "Dear Asha Rao")
	// Text part is the HTML body with markup stripped
	assert.NotContains(t, message.TextBody, "<p>")
	assert.Contains(t, message.TextBody, "Acme Ltd received your Access request.")
}

func TestDispatch_MissingTemplate(t *testing.T) {
	service, _, sender := setupNotificationService(t)

	svcErr := service.Dispatch(context.Background(), &model.Notice{
		TemplateName: "Unknown Template",
		Recipient:    "asha@example.com",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.TemplateNotFound, svcErr.Code)
	assert.Empty(t, sender.sent)
}

func TestDispatch_UnresolvedPlaceholderFails(t *testing.T) {
	service, store, sender := setupNotificationService(t)

	require.NoError(t, store.Create(nil, &model.EmailTemplate{
		TemplateName: model.TemplateClosure,
		Subject:      "Closed #{requestId}",
		BodyHTML:     "<p>{closureComment}</p>",
	}))

	svcErr := service.Dispatch(context.Background(), &model.Notice{
		TemplateName: model.TemplateClosure,
		Recipient:    "asha@example.com",
		Data:         map[string]string{"requestId": "42"},
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.NotificationFailed, svcErr.Code)
	assert.Empty(t, sender.sent)
}

func TestDispatch_NoRecipientIsNoOp(t *testing.T) {
	service, _, sender := setupNotificationService(t)

	svcErr := service.Dispatch(context.Background(), &model.Notice{
		TemplateName: model.TemplateCreation,
	})
	require.Nil(t, svcErr)
	assert.Empty(t, sender.sent)
}

func TestDispatch_TransportFailure(t *testing.T) {
	service, store, sender := setupNotificationService(t)
	sender.fail = fmt.Errorf("connection refused")

	require.NoError(t, store.Create(nil, &model.EmailTemplate{
		TemplateName: model.TemplateCreation,
		Subject:      "hello",
		BodyHTML:     "<p>hello</p>",
	}))

	svcErr := service.Dispatch(context.Background(), &model.Notice{
		TemplateName: model.TemplateCreation,
		Recipient:    "asha@example.com",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.NotificationFailed, svcErr.Code)
}

func TestSeedDefaultTemplates_OnlyWhenEmpty(t *testing.T) {
	registry := stores.NewStoreRegistry(storetest.NewFakeDBClient())
	store := newFakeTemplateStore()
	registry.EmailTemplate = store

	require.NoError(t, seedDefaultTemplates(context.Background(), registry))
	seeded := len(store.templates)
	assert.Equal(t, 4, seeded)

	// Second start leaves existing templates untouched
	require.NoError(t, seedDefaultTemplates(context.Background(), registry))
	assert.Equal(t, seeded, len(store.templates))
}
