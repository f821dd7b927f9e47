/*
 * Copyright (c) 2025, ComplyArk. (https://www.complyark.com).
 *
 * ComplyArk licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package provider provides functionality for managing database clients.
package provider

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/complyark/dpdpa-portal/internal/system/database"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/log"
)

// DBClientInterface defines the interface for database access used by the stores.
type DBClientInterface interface {
	Query(query dbmodel.DBQueryInterface, args ...interface{}) ([]map[string]interface{}, error)
	Execute(query dbmodel.DBQueryInterface, args ...interface{}) (sql.Result, error)
	BeginTx() (dbmodel.TxInterface, error)
}

// dbClient is the sqlx-backed implementation of DBClientInterface.
type dbClient struct {
	db     *sqlx.DB
	dbType string
	logger *log.Logger
}

// NewDBClient creates a database client over an initialized connection.
func NewDBClient(db *database.DB, dbType string) DBClientInterface {
	return &dbClient{
		db:     db.DB,
		dbType: dbType,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient")),
	}
}

// Query runs a read query and returns the rows as generic column maps.
func (c *dbClient) Query(query dbmodel.DBQueryInterface, args ...interface{}) ([]map[string]interface{}, error) {
	c.logger.Debug("Executing query", log.String("query_id", query.GetID()))

	rows, err := c.db.Queryx(query.GetQuery(c.dbType), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", query.GetID(), err)
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("query %s scan failed: %w", query.GetID(), err)
		}
		normalizeRow(row)
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s iteration failed: %w", query.GetID(), err)
	}

	return results, nil
}

// Execute runs a write query and returns the underlying result.
func (c *dbClient) Execute(query dbmodel.DBQueryInterface, args ...interface{}) (sql.Result, error) {
	c.logger.Debug("Executing statement", log.String("query_id", query.GetID()))

	result, err := c.db.Exec(query.GetQuery(c.dbType), args...)
	if err != nil {
		return nil, fmt.Errorf("statement %s failed: %w", query.GetID(), err)
	}
	return result, nil
}

// BeginTx starts a new transaction.
func (c *dbClient) BeginTx() (dbmodel.TxInterface, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return dbmodel.NewTx(tx), nil
}

// normalizeRow converts driver byte slices into strings so that store
// mappers can type-assert on plain Go values.
func normalizeRow(row map[string]interface{}) {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
}
