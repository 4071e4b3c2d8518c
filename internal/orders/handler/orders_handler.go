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
package handler

import (
	"net/http"

	"github.com/wso2/resident-reconciliation-service/internal/orders/provider"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

type OrdersHandler struct{}

func NewOrdersHandler() *OrdersHandler {

	return &OrdersHandler{}
}

// ImportOrders handles an order file upload and returns the import statistics.
func (oh *OrdersHandler) ImportOrders(w http.ResponseWriter, r *http.Request) {

	ingestionConfig := config.GetRuntime().Config.Ingestion
	file, err := utils.ReadUploadedFile(w, r, ingestionConfig, constants.OrderImportResource)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orderService, err := provider.NewOrderProvider().GetOrderService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	result, err := orderService.ImportOrders(r.Context(), file)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// GetImportResult returns the statistics of an earlier import.
func (oh *OrdersHandler) GetImportResult(w http.ResponseWriter, r *http.Request, importID string) {

	orderService, err := provider.NewOrderProvider().GetOrderService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	result, err := orderService.GetImportResult(r.Context(), importID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
