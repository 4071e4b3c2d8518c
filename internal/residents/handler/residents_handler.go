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

	"github.com/wso2/resident-reconciliation-service/internal/residents/provider"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

type ResidentsHandler struct{}

func NewResidentsHandler() *ResidentsHandler {

	return &ResidentsHandler{}
}

// UploadResidents handles a resident file upload and returns the reconciliation summary.
func (rh *ResidentsHandler) UploadResidents(w http.ResponseWriter, r *http.Request) {

	ingestionConfig := config.GetRuntime().Config.Ingestion
	file, err := utils.ReadUploadedFile(w, r, ingestionConfig, constants.ResidentUploadResource)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	residentService, err := provider.NewResidentProvider().GetResidentService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	summary, err := residentService.UploadResidents(r.Context(), file)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// GetDebugSnapshot returns the state of staging and the registry after the last upload.
func (rh *ResidentsHandler) GetDebugSnapshot(w http.ResponseWriter, r *http.Request) {

	residentService, err := provider.NewResidentProvider().GetResidentService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	snapshot, err := residentService.GetDebugSnapshot(r.Context())
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snapshot)
}
