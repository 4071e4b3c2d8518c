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
	"strings"

	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	"github.com/wso2/resident-reconciliation-service/internal/orders/model"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
)

// RegistryLookup resolves external codes. It must see pairs and persons written earlier in
// the same run.
type RegistryLookup interface {
	LookupPersonID(code int64) (personID int64, found bool, err error)
}

// PairRecorder checks and creates delivery pairs within the run.
type PairRecorder interface {
	PairExists(senderID, receiverID int64) (bool, error)
	CreatePair(senderID, receiverID int64) error
}

// OrderResolver turns order rows into delivery pairs.
type OrderResolver struct {
	lookup              RegistryLookup
	pairs               PairRecorder
	invalidSenderPolicy string
}

func NewOrderResolver(lookup RegistryLookup, pairs PairRecorder, invalidSenderPolicy string) *OrderResolver {
	return &OrderResolver{lookup: lookup, pairs: pairs, invalidSenderPolicy: invalidSenderPolicy}
}

// ResolveOrders processes rows in order and accumulates into stats. An error from the
// collaborators stops the run; the caller owns the transaction and rolls it back.
func (r *OrderResolver) ResolveOrders(ctx context.Context, rows []model.OrderRow, stats *model.ImportStatistics) error {

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.resolveRow(row, stats); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderResolver) resolveRow(row model.OrderRow, stats *model.ImportStatistics) error {

	senderText := trimmed(row.OrderCode)
	if senderText == "" || trimmed(row.GuestList) == "" {
		return nil
	}

	senderCode, err := normalizer.ParseCode(senderText)
	if err != nil {
		if r.invalidSenderPolicy == constants.InvalidSenderCount {
			stats.TotalOrders++
			stats.InvalidSenders = appendDistinct(stats.InvalidSenders, senderText)
		}
		return nil
	}
	stats.TotalOrders++

	senderID, found, err := r.lookup.LookupPersonID(senderCode)
	if err != nil {
		return err
	}
	if !found {
		stats.AddMissingSender(senderCode)
		return nil
	}

	for _, token := range row.GuestCodes() {
		stats.TotalPairs++

		receiverCode, err := normalizer.ParseCode(token)
		if err != nil {
			stats.FailedPairs++
			continue
		}
		receiverID, found, err := r.lookup.LookupPersonID(receiverCode)
		if err != nil {
			return err
		}
		if !found {
			stats.AddMissingReceiver(receiverCode)
			stats.FailedPairs++
			continue
		}

		exists, err := r.pairs.PairExists(senderID, receiverID)
		if err != nil {
			return err
		}
		if exists {
			stats.FailedPairs++
			continue
		}
		if err := r.pairs.CreatePair(senderID, receiverID); err != nil {
			return err
		}
		stats.SuccessfulPairs++
	}
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func appendDistinct(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
