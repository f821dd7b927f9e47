package stores

import (
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	"github.com/complyark/dpdpa-portal/internal/system/log"
)

// StoreRegistry holds references to all stores in the application.
// Each store is held as interface{} to avoid circular dependencies;
// services type-assert to their needed store interfaces.
type StoreRegistry struct {
	dbClient provider.DBClientInterface

	Status        interface{} // status.StatusStore
	Request       interface{} // dprequest.RequestStore
	Grievance     interface{} // grievance.GrievanceStore
	Organization  interface{} // organization.OrganizationStore
	Industry      interface{} // industry.IndustryStore
	User          interface{} // user.UserStore
	EmailTemplate interface{} // notification.TemplateStore
	Dashboard     interface{} // dashboard.DashboardStore
}

// NewStoreRegistry creates a new store registry.
func NewStoreRegistry(dbClient provider.DBClientInterface) *StoreRegistry {
	return &StoreRegistry{dbClient: dbClient}
}

// DBClient returns the database client modules build their stores over.
func (r *StoreRegistry) DBClient() provider.DBClientInterface {
	return r.dbClient
}

// ExecuteTransaction executes multiple store operations in a single transaction.
func (r *StoreRegistry) ExecuteTransaction(queries []func(tx dbmodel.TxInterface) error) error {
	logger := log.GetLogger()
	logger.Debug("Starting transaction", log.Int("query_count", len(queries)))

	tx, err := r.dbClient.BeginTx()
	if err != nil {
		logger.Error("Failed to begin transaction", log.Error(err))
		return err
	}

	for i, query := range queries {
		if err := query(tx); err != nil {
			logger.Warn("Transaction query failed, rolling back",
				log.Error(err),
				log.Int("failed_query_index", i),
			)
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit transaction", log.Error(err))
		return err
	}

	logger.Debug("Transaction committed successfully", log.Int("query_count", len(queries)))
	return nil
}

// WithTransaction runs fn inside a single transaction, committing on success
// and rolling back on error. It exists for flows that must read and write
// under the same transaction, such as row-locked lifecycle updates.
func (r *StoreRegistry) WithTransaction(fn func(tx dbmodel.TxInterface) error) error {
	logger := log.GetLogger()

	tx, err := r.dbClient.BeginTx()
	if err != nil {
		logger.Error("Failed to begin transaction", log.Error(err))
		return err
	}

	if err := fn(tx); err != nil {
		logger.Warn("Transaction failed, rolling back", log.Error(err))
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit transaction", log.Error(err))
		return err
	}

	return nil
}
