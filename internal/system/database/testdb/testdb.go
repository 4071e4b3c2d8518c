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

// Package testdb opens an in-memory sqlite registry with the service schema for tests.
package testdb

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/provider"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
)

// NewSQLite installs a fresh in-memory database as the shared pool and returns a client for it.
// The runtime configuration is reset to defaults with the sqlite data source.
func NewSQLite(t testing.TB) client.DBClientInterface {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	_, err = db.Exec(scripts.SchemaDDL[constants.SQLiteDBType])
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.DataSource.Type = constants.SQLiteDBType
	config.OverrideRuntime(cfg)
	provider.SetTestDB(db, constants.SQLiteDBType)

	t.Cleanup(func() {
		_ = provider.Shutdown()
	})

	return client.NewDBClient(db)
}
