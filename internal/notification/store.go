package notification

import (
	"context"
	"fmt"

	"github.com/complyark/dpdpa-portal/internal/notification/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
)

// DBQuery objects for email template operations
var (
	QueryCreateTemplate = dbmodel.DBQuery{
		ID:    "CREATE_EMAIL_TEMPLATE",
		Query: "INSERT INTO EMAIL_TEMPLATE (TEMPLATE_NAME, SUBJECT, BODY_HTML) VALUES (?, ?, ?)",
	}

	QueryGetTemplateByName = dbmodel.DBQuery{
		ID:    "GET_EMAIL_TEMPLATE_BY_NAME",
		Query: "SELECT TEMPLATE_ID, TEMPLATE_NAME, SUBJECT, BODY_HTML FROM EMAIL_TEMPLATE WHERE TEMPLATE_NAME = ?",
	}

	QueryGetAllTemplates = dbmodel.DBQuery{
		ID:    "GET_ALL_EMAIL_TEMPLATES",
		Query: "SELECT TEMPLATE_ID, TEMPLATE_NAME, SUBJECT, BODY_HTML FROM EMAIL_TEMPLATE ORDER BY TEMPLATE_NAME",
	}

	QueryUpdateTemplate = dbmodel.DBQuery{
		ID:    "UPDATE_EMAIL_TEMPLATE",
		Query: "UPDATE EMAIL_TEMPLATE SET SUBJECT = ?, BODY_HTML = ? WHERE TEMPLATE_ID = ?",
	}

	QueryCountTemplates = dbmodel.DBQuery{
		ID:    "COUNT_EMAIL_TEMPLATES",
		Query: "SELECT COUNT(*) as count FROM EMAIL_TEMPLATE",
	}
)

// TemplateStore defines the interface for email template data operations
type TemplateStore interface {
	Create(tx dbmodel.TxInterface, template *model.EmailTemplate) error
	GetByName(ctx context.Context, name string) (*model.EmailTemplate, error)
	List(ctx context.Context) ([]model.EmailTemplate, error)
	Update(tx dbmodel.TxInterface, template *model.EmailTemplate) error
	Count(ctx context.Context) (int64, error)
}

type store struct {
	dbClient provider.DBClientInterface
}

// NewTemplateStore creates a new email template store
func NewTemplateStore(dbClient provider.DBClientInterface) TemplateStore {
	return &store{
		dbClient: dbClient,
	}
}

// Create inserts a template and populates its generated ID
func (s *store) Create(tx dbmodel.TxInterface, template *model.EmailTemplate) error {
	result, err := tx.Exec(QueryCreateTemplate.Query,
		template.TemplateName,
		template.Subject,
		template.BodyHTML,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	template.TemplateID = id
	return nil
}

// GetByName retrieves a template by its name
func (s *store) GetByName(ctx context.Context, name string) (*model.EmailTemplate, error) {
	results, err := s.dbClient.Query(QueryGetTemplateByName, name)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("template %w", dbutils.ErrNotFound)
	}
	return mapToTemplate(results[0]), nil
}

// List retrieves all templates
func (s *store) List(ctx context.Context) ([]model.EmailTemplate, error) {
	results, err := s.dbClient.Query(QueryGetAllTemplates)
	if err != nil {
		return nil, err
	}

	templates := make([]model.EmailTemplate, 0, len(results))
	for _, row := range results {
		templates = append(templates, *mapToTemplate(row))
	}
	return templates, nil
}

// Update updates a template's subject and body
func (s *store) Update(tx dbmodel.TxInterface, template *model.EmailTemplate) error {
	_, err := tx.Exec(QueryUpdateTemplate.Query,
		template.Subject,
		template.BodyHTML,
		template.TemplateID,
	)
	return err
}

// Count returns the number of stored templates
func (s *store) Count(ctx context.Context) (int64, error) {
	results, err := s.dbClient.Query(QueryCountTemplates)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return dbutils.ToInt64(results[0]["count"]), nil
}

func mapToTemplate(row map[string]interface{}) *model.EmailTemplate {
	return &model.EmailTemplate{
		TemplateID:   dbutils.ToInt64(row["TEMPLATE_ID"]),
		TemplateName: dbutils.ToString(row["TEMPLATE_NAME"]),
		Subject:      dbutils.ToString(row["SUBJECT"]),
		BodyHTML:     dbutils.ToString(row["BODY_HTML"]),
	}
}
