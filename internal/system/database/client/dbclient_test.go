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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestExecuteQuery_LowercasesColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT personid, code FROM person WHERE code = \\$1").
		WithArgs(int64(270)).
		WillReturnRows(sqlmock.NewRows([]string{"PersonID", "Code"}).AddRow(int64(1), int64(270)))

	results, err := NewDBClient(db).ExecuteQuery("SELECT personid, code FROM person WHERE code = $1", int64(270))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0]["personid"])
	assert.Equal(t, int64(270), results[0]["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteQuery_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT personid FROM person").
		WillReturnRows(sqlmock.NewRows([]string{"personid"}))

	results, err := NewDBClient(db).ExecuteQuery("SELECT personid FROM person")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExecuteQuery_PropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err = NewDBClient(db).ExecuteQuery("SELECT 1")
	assert.EqualError(t, err, "connection reset")
}

func TestTxClient_CommitAndRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO delivery_pair").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(10)))
	mock.ExpectCommit()

	tx, err := NewDBClient(db).BeginTx(context.Background())
	require.NoError(t, err)
	rows, err := tx.ExecuteQuery("INSERT INTO delivery_pair (delivery_sender_id, delivery_getter_id) "+
		"VALUES ($1, $2) RETURNING order_id", int64(1), int64(2))
	require.NoError(t, err)
	assert.Equal(t, int64(10), rows[0]["order_id"])
	require.NoError(t, tx.Commit())

	// Rolling back a committed transaction is tolerated.
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitDatabase_ReadsSchemaFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "schema.sql"), []byte("CREATE TABLE person (personid INT)"), 0o600))
	mock.ExpectExec("CREATE TABLE person").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewDBClient(db).InitDatabase(home, "schema.sql"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitDatabase_MissingFile(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewDBClient(db).InitDatabase(t.TempDir(), "missing.sql")
	assert.Error(t, err)
}
