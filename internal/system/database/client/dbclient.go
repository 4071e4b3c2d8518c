/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
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

package client

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

// QueryExecutor is the session every store function runs its statements on. Both the
// pooled client and a transaction satisfy it.
type QueryExecutor interface {
	ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error)
}

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	QueryExecutor
	BeginTx(ctx context.Context) (TxClientInterface, error)
	Conn(ctx context.Context) (*sql.Conn, error)
	ExecuteScript(script string) error
	InitDatabase(serviceHome, file string) error
	Close() error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	db *sql.DB
}

// NewDBClient creates a new instance of DBClient with the provided database connection.
func NewDBClient(db *sql.DB) DBClientInterface {

	return &DBClient{
		db: db,
	}
}

// InitDatabase executes the schema file found under the service home.
func (client *DBClient) InitDatabase(serviceHome, file string) error {

	sqlBytes, err := os.ReadFile(path.Join(serviceHome, file))
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	return client.ExecuteScript(string(sqlBytes))
}

// ExecuteScript runs a multi statement script such as the schema DDL.
func (client *DBClient) ExecuteScript(script string) error {

	if _, err := client.db.Exec(script); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	log.GetLogger().Info("Database schema created successfully")
	return nil
}

// ExecuteQuery executes a query and returns the result as a slice of maps.
func (client *DBClient) ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error) {

	rows, err := client.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// BeginTx starts a new database transaction.
func (client *DBClient) BeginTx(ctx context.Context) (TxClientInterface, error) {

	tx, err := client.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &TxClient{tx: tx}, nil
}

// Conn reserves a single connection from the pool. Session scoped state such as
// advisory locks must be taken and released on the same connection.
func (client *DBClient) Conn(ctx context.Context) (*sql.Conn, error) {

	return client.db.Conn(ctx)
}

// Close is a no-op; the pool is shared and owned by the provider.
func (client *DBClient) Close() error {
	return nil
}

// scanRows reads every row into a map keyed by the lower-cased column name.
func scanRows(rows *sql.Rows) ([]map[string]interface{}, error) {

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		row := make([]interface{}, len(columns))
		rowPointers := make([]interface{}, len(columns))
		for i := range row {
			rowPointers[i] = &row[i]
		}

		if err := rows.Scan(rowPointers...); err != nil {
			return nil, err
		}

		result := map[string]interface{}{}
		for i, col := range columns {
			// Normalize column names to lowercase for consistency.
			result[strings.ToLower(col)] = row[i]
		}
		results = append(results, result)
	}

	return results, rows.Err()
}
