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
package service

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/distribution/model"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/lock"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/testdb"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

const outerOrdersCSV = "order_code,guest_list,rating\n" +
	"270,364|849,2\n" +
	"364,270,3\n" +
	"849,270,7\n" +
	",,\n"

func intPtr(i int) *int {
	return &i
}

func TestPackageSizeForRating(t *testing.T) {
	sizes := constants.DefaultPackageSizes

	assert.Equal(t, "סמלי", PackageSizeForRating(intPtr(1), sizes))
	assert.Equal(t, "מכובד", PackageSizeForRating(intPtr(2), sizes))
	assert.Equal(t, "מפואר", PackageSizeForRating(intPtr(3), sizes))
	assert.Equal(t, "סמלי", PackageSizeForRating(intPtr(9), sizes))
	assert.Equal(t, "סמלי", PackageSizeForRating(nil, sizes))
	assert.Equal(t, "סמלי", PackageSizeForRating(intPtr(2), nil))
}

func newDistributionService(t *testing.T, enabled bool) (*DistributionService, client.DBClientInterface) {
	t.Helper()
	dbClient := testdb.NewSQLite(t)
	cfg := config.DefaultConfig()
	cfg.Distribution.Enabled = enabled
	return NewDistributionService(dbClient, constants.SQLiteDBType, lock.NewLocalLock(), cfg), dbClient
}

func TestQueueOuterOrders(t *testing.T) {
	s, dbClient := newDistributionService(t, false)

	report, err := s.QueueOuterOrders(context.Background(),
		&utils.UploadedFile{Name: "outer.csv", Data: []byte(outerOrdersCSV)})
	require.NoError(t, err)

	assert.Equal(t, 3, report.RowsQueued)
	assert.True(t, report.DistributionSkipped)
	assert.Equal(t, []model.StatusCount{{Status: constants.OuterOrderStatusWaiting, Count: 3}}, report.Statuses)
	assert.Empty(t, report.Errors)

	results, err := dbClient.ExecuteQuery(`SELECT sender_code, package_size, origin FROM outer_orders ORDER BY id`)
	require.NoError(t, err)
	require.Len(t, results, 3)
	sizes := make([]string, 0, len(results))
	for _, row := range results {
		sizes = append(sizes, *utils.ColumnString(row, "package_size"))
		assert.Equal(t, constants.OuterOrderOrigin, *utils.ColumnString(row, "origin"))
	}
	assert.Equal(t, []string{"מכובד", "מפואר", "סמלי"}, sizes)
}

func TestQueueOuterOrders_DistributionUnsupportedOnSQLite(t *testing.T) {
	s, _ := newDistributionService(t, true)

	report, err := s.QueueOuterOrders(context.Background(),
		&utils.UploadedFile{Name: "outer.csv", Data: []byte(outerOrdersCSV)})
	require.NoError(t, err)
	assert.True(t, report.DistributionSkipped)
	assert.Zero(t, report.Distributed)
	assert.Equal(t, 3, report.RowsQueued)
}

func TestQueueOuterOrders_MissingColumns(t *testing.T) {
	s, _ := newDistributionService(t, false)

	_, err := s.QueueOuterOrders(context.Background(),
		&utils.UploadedFile{Name: "outer.csv", Data: []byte("rating\n1\n")})
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}
