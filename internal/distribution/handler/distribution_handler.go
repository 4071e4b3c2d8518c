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

	"github.com/wso2/resident-reconciliation-service/internal/distribution/provider"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

type DistributionHandler struct{}

func NewDistributionHandler() *DistributionHandler {

	return &DistributionHandler{}
}

// QueueOuterOrders handles an outer order upload.
func (dh *DistributionHandler) QueueOuterOrders(w http.ResponseWriter, r *http.Request) {

	file, err := utils.ReadUploadedFile(w, r, config.GetRuntime().Config.Ingestion, constants.OuterOrderResource)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	distributionService, err := provider.NewDistributionProvider().GetDistributionService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	report, err := distributionService.QueueOuterOrders(r.Context(), file)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, report)
}
