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

package store

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/testdb"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func seedPerson(t *testing.T, exec client.QueryExecutor, code int64) int64 {
	t.Helper()
	results, err := exec.ExecuteQuery(`INSERT INTO person (code) VALUES (?) RETURNING personid`, code)
	require.NoError(t, err)
	id, ok := utils.ColumnInt64(results[0], "personid")
	require.True(t, ok)
	return id
}

func TestDeliveryPairStore_LookupAndInsert(t *testing.T) {
	dbClient := testdb.NewSQLite(t)
	s := NewDeliveryPairStore(constants.SQLiteDBType)
	sender := seedPerson(t, dbClient, 270)
	getter := seedPerson(t, dbClient, 364)

	id, found, err := s.LookupPersonID(dbClient, 270)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sender, id)

	_, found, err = s.LookupPersonID(dbClient, 999)
	require.NoError(t, err)
	assert.False(t, found)

	exists, err := s.PairExists(dbClient, sender, getter)
	require.NoError(t, err)
	assert.False(t, exists)

	orderID, err := s.InsertPair(dbClient, sender, getter, time.Now().UTC(), constants.OrderOriginCSVImport)
	require.NoError(t, err)
	assert.NotZero(t, orderID)

	exists, err = s.PairExists(dbClient, sender, getter)
	require.NoError(t, err)
	assert.True(t, exists)

	reverse, err := s.PairExists(dbClient, getter, sender)
	require.NoError(t, err)
	assert.False(t, reverse, "pairs are directed")

	count, err := s.CountPairs(dbClient)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeliveryPairStore_DuplicateInsertFails(t *testing.T) {
	dbClient := testdb.NewSQLite(t)
	s := NewDeliveryPairStore(constants.SQLiteDBType)
	sender := seedPerson(t, dbClient, 1)
	getter := seedPerson(t, dbClient, 2)

	_, err := s.InsertPair(dbClient, sender, getter, time.Now().UTC(), constants.OrderOriginCSVImport)
	require.NoError(t, err)
	_, err = s.InsertPair(dbClient, sender, getter, time.Now().UTC(), constants.OrderOriginCSVImport)

	var serverErr *errors2.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, errors2.SAVE_DELIVERY_PAIR.Code, serverErr.Code)
}

func TestDeliveryPairStore_PostgresInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orderDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO delivery_pair").
		WithArgs(int64(10), int64(20), orderDate, constants.OrderOriginCSVImport).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(7)))

	orderID, err := NewDeliveryPairStore(constants.PostgresDBType).
		InsertPair(client.NewDBClient(db), 10, 20, orderDate, constants.OrderOriginCSVImport)
	require.NoError(t, err)
	assert.Equal(t, int64(7), orderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryPairStore_LookupFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT personid FROM person WHERE code = \\$1").
		WithArgs(int64(270)).
		WillReturnError(errors.New("connection reset"))

	_, _, err = NewDeliveryPairStore(constants.PostgresDBType).LookupPersonID(client.NewDBClient(db), 270)
	var serverErr *errors2.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, errors2.RESOLVE_ORDERS.Code, serverErr.Code)
}
