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
	"fmt"

	"github.com/wso2/resident-reconciliation-service/internal/distribution/model"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

type OuterOrderStoreInterface interface {
	Insert(exec client.QueryExecutor, order *model.OuterOrder) (int64, error)
	DistributeAll(exec client.QueryExecutor) (int64, error)
	CountByStatus(exec client.QueryExecutor) ([]model.StatusCount, error)
	GroupErrors(exec client.QueryExecutor) ([]model.ErrorGroup, error)
}

type OuterOrderStore struct {
	dbType string
}

func NewOuterOrderStore(dbType string) *OuterOrderStore {
	return &OuterOrderStore{dbType: dbType}
}

// Insert queues an outer order and returns its id.
func (s *OuterOrderStore) Insert(exec client.QueryExecutor, order *model.OuterOrder) (int64, error) {

	results, err := exec.ExecuteQuery(scripts.InsertOuterOrder[s.dbType], order.SenderCode, order.Invitees,
		order.PackageSize, order.Origin, order.Status, order.CreatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to queue outer order for sender %q", order.SenderCode)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.QUEUE_OUTER_ORDERS.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	id, _ := utils.ColumnInt64(results[0], "id")
	return id, nil
}

// DistributeAll runs the distribution function over every waiting order. Only postgres
// deployments carry the function.
func (s *OuterOrderStore) DistributeAll(exec client.QueryExecutor) (int64, error) {

	query, ok := scripts.DistributeAllOuterOrders[s.dbType]
	if !ok {
		return 0, errors2.NewServerError(errors2.DISTRIBUTION_UNSUPPORTED, nil)
	}
	results, err := exec.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed to run outer order distribution."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.DISTRIBUTE_ORDERS.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	distributed, _ := utils.ColumnInt64(results[0], "distributed")
	return distributed, nil
}

func (s *OuterOrderStore) CountByStatus(exec client.QueryExecutor) ([]model.StatusCount, error) {

	results, err := exec.ExecuteQuery(scripts.CountOuterOrdersByStatus[s.dbType])
	if err != nil {
		errorMsg := "Failed to count outer orders by status."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY.WithDescription(errorMsg), err)
	}
	counts := make([]model.StatusCount, 0, len(results))
	for _, row := range results {
		counts = append(counts, model.StatusCount{
			Status: stringValue(utils.ColumnString(row, "status")),
			Count:  utils.ColumnInt(row, "count"),
		})
	}
	return counts, nil
}

func (s *OuterOrderStore) GroupErrors(exec client.QueryExecutor) ([]model.ErrorGroup, error) {

	results, err := exec.ExecuteQuery(scripts.GroupOuterOrderErrors[s.dbType])
	if err != nil {
		errorMsg := "Failed to read the outer order error log."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY.WithDescription(errorMsg), err)
	}
	groups := make([]model.ErrorGroup, 0, len(results))
	for _, row := range results {
		groups = append(groups, model.ErrorGroup{
			Severity:   stringValue(utils.ColumnString(row, "severity")),
			ReasonCode: stringValue(utils.ColumnString(row, "reason_code")),
			Count:      utils.ColumnInt(row, "count"),
		})
	}
	return groups, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
