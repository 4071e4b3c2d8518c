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
package services

import (
	"net/http"
	"strings"

	distributionHandler "github.com/wso2/resident-reconciliation-service/internal/distribution/handler"
	"github.com/wso2/resident-reconciliation-service/internal/orders/handler"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
)

type OrdersService struct {
	ordersHandler      *handler.OrdersHandler
	outerOrdersHandler *distributionHandler.DistributionHandler
}

func NewOrdersService() *OrdersService {

	return &OrdersService{
		ordersHandler:      handler.NewOrdersHandler(),
		outerOrdersHandler: distributionHandler.NewDistributionHandler(),
	}
}

func (s *OrdersService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, constants.OrdersApiPath), "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/import":
		s.ordersHandler.ImportOrders(w, r)
	case method == http.MethodGet && strings.HasPrefix(path, "/imports/"):
		importID := strings.TrimPrefix(path, "/imports/")
		if importID == "" || strings.Contains(importID, "/") {
			http.NotFound(w, r)
			return
		}
		s.ordersHandler.GetImportResult(w, r, importID)
	case method == http.MethodPost && path == "/outer":
		s.outerOrdersHandler.QueueOuterOrders(w, r)
	default:
		http.NotFound(w, r)
	}
}
