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

package provider

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
)

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
	GetDBType() string
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct{}

var (
	pool   *sql.DB
	dbType string
	poolMu sync.Mutex
)

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {

	return &DBProvider{}
}

// GetDBClient returns a client over the shared connection pool, opening it on first use.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {

	poolMu.Lock()
	defer poolMu.Unlock()

	if pool != nil {
		return client.NewDBClient(pool), nil
	}

	runtimeConfig := config.GetRuntime().Config
	dbConfig, err := getDBConfig(runtimeConfig.DataSource)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Test the database connection.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	if runtimeConfig.DataSource.Type == constants.SQLiteDBType {
		// sqlite serialises writers; one connection keeps transactions from contending.
		db.SetMaxOpenConns(1)
	}

	pool = db
	dbType = runtimeConfig.DataSource.Type
	return client.NewDBClient(pool), nil
}

// GetDBType returns the configured database type, which is also the key into the scripts maps.
func (d *DBProvider) GetDBType() string {

	poolMu.Lock()
	defer poolMu.Unlock()

	if dbType != "" {
		return dbType
	}
	return config.GetRuntime().Config.DataSource.Type
}

// SetTestDB installs an already opened database as the shared pool.
func SetTestDB(db *sql.DB, dbTypeName string) {

	poolMu.Lock()
	defer poolMu.Unlock()

	pool = db
	dbType = dbTypeName
}

// Shutdown closes the shared pool.
func Shutdown() error {

	poolMu.Lock()
	defer poolMu.Unlock()

	if pool == nil {
		return nil
	}
	err := pool.Close()
	pool = nil
	dbType = ""
	return err
}

// getDBConfig returns the driver and DSN for the configured data source.
func getDBConfig(dataSource config.DataSourceConfig) (DBConfig, error) {

	var dbConfig DBConfig

	switch dataSource.Type {
	case constants.PostgresDBType:
		dbConfig.driverName = "postgres"
		dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, dataSource.SSLMode)
	case constants.SQLiteDBType:
		dbConfig.driverName = "sqlite3"
		path := dataSource.Path
		if path == "" {
			path = ":memory:"
		}
		dbConfig.dsn = fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	default:
		return dbConfig, fmt.Errorf("unsupported database type: %q", dataSource.Type)
	}

	return dbConfig, nil
}
