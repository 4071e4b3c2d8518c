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
	"time"

	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

type DeliveryPairStoreInterface interface {
	LookupPersonID(exec client.QueryExecutor, code int64) (int64, bool, error)
	PairExists(exec client.QueryExecutor, senderID, getterID int64) (bool, error)
	InsertPair(exec client.QueryExecutor, senderID, getterID int64, orderDate time.Time, originType string) (int64, error)
	CountPairs(exec client.QueryExecutor) (int, error)
}

// DeliveryPairStore is the SQL implementation of DeliveryPairStoreInterface.
type DeliveryPairStore struct {
	dbType string
}

func NewDeliveryPairStore(dbType string) *DeliveryPairStore {
	return &DeliveryPairStore{dbType: dbType}
}

// LookupPersonID resolves an external code to the registry surrogate id.
func (s *DeliveryPairStore) LookupPersonID(exec client.QueryExecutor, code int64) (int64, bool, error) {

	results, err := exec.ExecuteQuery(scripts.GetPersonIDByCode[s.dbType], code)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to resolve person code: %d", code)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, false, errors2.NewServerError(errors2.RESOLVE_ORDERS.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return 0, false, nil
	}
	personID, ok := utils.ColumnInt64(results[0], "personid")
	return personID, ok, nil
}

// PairExists reports whether the sender already delivers to the getter.
func (s *DeliveryPairStore) PairExists(exec client.QueryExecutor, senderID, getterID int64) (bool, error) {

	results, err := exec.ExecuteQuery(scripts.GetDeliveryPair[s.dbType], senderID, getterID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to look up delivery pair %d -> %d", senderID, getterID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.RESOLVE_ORDERS.WithDescription(errorMsg), err)
	}
	return len(results) > 0, nil
}

// InsertPair creates a delivery pair and returns its order id.
func (s *DeliveryPairStore) InsertPair(exec client.QueryExecutor, senderID, getterID int64, orderDate time.Time,
	originType string) (int64, error) {

	results, err := exec.ExecuteQuery(scripts.InsertDeliveryPair[s.dbType], senderID, getterID, orderDate, originType)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to create delivery pair %d -> %d", senderID, getterID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.SAVE_DELIVERY_PAIR.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	orderID, _ := utils.ColumnInt64(results[0], "order_id")
	return orderID, nil
}

// CountPairs returns the number of stored delivery pairs.
func (s *DeliveryPairStore) CountPairs(exec client.QueryExecutor) (int, error) {

	results, err := exec.ExecuteQuery(scripts.CountDeliveryPairs[s.dbType])
	if err != nil {
		errorMsg := "Failed to count delivery pairs."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.EXECUTE_QUERY.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return utils.ColumnInt(results[0], "count"), nil
}
