// Package storetest provides in-memory doubles for the database client so
// service tests can run against fake stores without a live database.
package storetest

import (
	"database/sql"

	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
)

// fakeDBClient satisfies DBClientInterface. Fake stores ignore the
// transaction handle, so BeginTx hands out a no-op transaction.
type fakeDBClient struct{}

// NewFakeDBClient returns a DBClientInterface suitable for registry-backed
// service tests that use in-memory stores.
func NewFakeDBClient() provider.DBClientInterface {
	return &fakeDBClient{}
}

func (c *fakeDBClient) Query(query dbmodel.DBQueryInterface, args ...interface{}) ([]map[string]interface{}, error) {
	return nil, nil
}

func (c *fakeDBClient) Execute(query dbmodel.DBQueryInterface, args ...interface{}) (sql.Result, error) {
	return fakeResult{}, nil
}

func (c *fakeDBClient) BeginTx() (dbmodel.TxInterface, error) {
	return &fakeTx{}, nil
}

type fakeTx struct{}

func (t *fakeTx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return fakeResult{}, nil
}

func (t *fakeTx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error   { return nil }
func (t *fakeTx) Rollback() error { return nil }

type fakeResult struct{}

func (fakeResult) LastInsertId() (int64, error) { return 1, nil }
func (fakeResult) RowsAffected() (int64, error) { return 1, nil }
