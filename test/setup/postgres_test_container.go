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
package setup

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
)

const (
	testUser     = "testuser"
	testPassword = "testpass"
	testDatabase = "testdb"
)

type TestPostgres struct {
	Container testcontainers.Container
	DB        *sql.DB
}

// distributionFunction stands in for the distribution deployment. Orders with a numeric
// sender are distributed; the rest are failed and logged.
const distributionFunction = `
CREATE OR REPLACE FUNCTION distribute_all_outer_orders() RETURNS INTEGER AS $$
DECLARE
    distributed INTEGER;
BEGIN
    UPDATE outer_orders SET status = 'distributed'
        WHERE status = 'waiting' AND sender_code ~ '^[0-9]+$';
    GET DIAGNOSTICS distributed = ROW_COUNT;

    INSERT INTO outer_order_error_log (outer_order_id, severity, reason_code)
        SELECT id, 'error', 'INVALID_SENDER' FROM outer_orders WHERE status = 'waiting';
    UPDATE outer_orders SET status = 'failed' WHERE status = 'waiting';

    RETURN distributed;
END
$$ LANGUAGE plpgsql;
`

// SetupTestPostgres starts a Postgres container with the registry schema and a stub
// distribution function.
func SetupTestPostgres(ctx context.Context) (*TestPostgres, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDatabase,
		},
		// The entrypoint restarts the server once after init scripts, so wait for the second
		// ready line.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	db, err := openRegistry(ctx, container)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	return &TestPostgres{Container: container, DB: db}, nil
}

func openRegistry(ctx context.Context, container testcontainers.Container) (*sql.DB, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port.Port(), testUser, testPassword, testDatabase)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	for _, script := range []string{scripts.SchemaDDL[constants.PostgresDBType], distributionFunction} {
		if _, err := db.ExecContext(ctx, script); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to prepare test schema: %w", err)
		}
	}
	return db, nil
}

// Terminate closes the pool and removes the container.
func (p *TestPostgres) Terminate(ctx context.Context) error {
	_ = p.DB.Close()
	return p.Container.Terminate(ctx)
}

// Reset empties every registry table between tests.
func (p *TestPostgres) Reset() error {
	_, err := p.DB.Exec(`TRUNCATE outer_order_error_log, outer_orders, delivery_pair, person_archive,
        staged_residents, raw_residents, person RESTART IDENTITY CASCADE`)
	return err
}
