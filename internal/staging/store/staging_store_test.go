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

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	"github.com/wso2/resident-reconciliation-service/internal/staging/model"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/testdb"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func str(s string) *string {
	return &s
}

func TestTruncate_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("TRUNCATE TABLE staged_residents RESTART IDENTITY").WillReturnRows(sqlmock.NewRows(nil))
	mock.ExpectQuery("TRUNCATE TABLE raw_residents RESTART IDENTITY").WillReturnRows(sqlmock.NewRows(nil))

	err = NewStagingStore(constants.PostgresDBType).Truncate(client.NewDBClient(db))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRaw_StopsOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO raw_residents").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO raw_residents").
		WillReturnError(errors.New("disk full"))

	rows := []model.RawResident{
		{ResidentFields: model.ResidentFields{Code: str("270")}},
		{ResidentFields: model.ResidentFields{Code: str("364")}},
		{ResidentFields: model.ResidentFields{Code: str("849")}},
	}
	inserted, err := NewStagingStore(constants.PostgresDBType).InsertRaw(client.NewDBClient(db), rows)

	assert.Equal(t, 1, inserted)
	var serverErr *errors2.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, errors2.STAGE_RESIDENTS.Code, serverErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_JoinsPhoneFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE staged_residents SET status").
		WithArgs("merged", false, "phone:not_dialable,mobile:not_dialable", nil, int64(7)).
		WillReturnRows(sqlmock.NewRows(nil))

	err = NewStagingStore(constants.PostgresDBType).UpdateStatus(client.NewDBClient(db), 7, model.Outcome{
		Status:     model.StatusMerged,
		EmailValid: false,
		PhoneFlags: []string{"phone:not_dialable", "mobile:not_dialable"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteRawToStaged_ResolvesSentinels(t *testing.T) {
	dbClient := testdb.NewSQLite(t)
	s := NewStagingStore(constants.SQLiteDBType)
	sentinels := normalizer.NewSentinelSet(constants.DefaultSentinels)

	_, err := s.InsertRaw(dbClient, []model.RawResident{
		{
			ResidentFields: model.ResidentFields{
				Code: str(" 270 "), LastName: str("כהן"), FatherName: str("none"),
				ApartmentNumber: str("ללא דירה"), Email: str("NaN"),
			},
			StandingOrder: str("2.0"),
		},
		{
			ResidentFields: model.ResidentFields{LastName: str("לוי"), Phone: str("")},
			StandingOrder:  str("abc"),
		},
	})
	require.NoError(t, err)

	count, err := s.PromoteRawToStaged(dbClient, sentinels)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	staged, err := s.ListStaged(dbClient)
	require.NoError(t, err)
	require.Len(t, staged, 2)

	first := staged[0]
	assert.Equal(t, str("270"), first.Code)
	assert.Equal(t, str("כהן"), first.LastName)
	assert.Nil(t, first.FatherName)
	assert.Nil(t, first.ApartmentNumber)
	assert.Nil(t, first.Email)
	assert.Equal(t, 2, first.StandingOrder)
	assert.Equal(t, model.StatusUnresolved, first.Status)

	second := staged[1]
	assert.Nil(t, second.Code)
	assert.Nil(t, second.Phone)
	assert.Equal(t, 0, second.StandingOrder)
	assert.Less(t, first.ID, second.ID, "upload order is preserved")
}

func TestSnapshot_AndTruncate(t *testing.T) {
	dbClient := testdb.NewSQLite(t)
	s := NewStagingStore(constants.SQLiteDBType)

	_, err := s.InsertRaw(dbClient, []model.RawResident{
		{ResidentFields: model.ResidentFields{Code: str("1")}},
		{ResidentFields: model.ResidentFields{Code: str("2")}},
	})
	require.NoError(t, err)
	_, err = s.PromoteRawToStaged(dbClient, normalizer.NewSentinelSet(nil))
	require.NoError(t, err)

	staged, err := s.ListStaged(dbClient)
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(dbClient, staged[1].ID, model.Outcome{
		Status: model.StatusSkipped, EmailValid: true, Note: "malformed code",
	}))

	snapshot, err := s.Snapshot(dbClient, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.RawCount)
	require.NotNil(t, snapshot.RawSample)
	assert.Equal(t, str("1"), snapshot.RawSample.Code)
	assert.Equal(t, 2, snapshot.StagedCount)
	assert.Equal(t, 1, snapshot.StagedCounts.Get(model.StatusUnresolved))
	assert.Equal(t, 1, snapshot.StagedCounts.Get(model.StatusSkipped))
	require.Len(t, snapshot.SkippedSample, 1)
	assert.Equal(t, str("malformed code"), snapshot.SkippedSample[0].Note)

	require.NoError(t, s.Truncate(dbClient))
	snapshot, err = s.Snapshot(dbClient, 5)
	require.NoError(t, err)
	assert.Zero(t, snapshot.RawCount)
	assert.Nil(t, snapshot.RawSample)
	assert.Zero(t, snapshot.StagedCount)
}
