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

	"github.com/wso2/resident-reconciliation-service/internal/health_check/provider"
	"github.com/wso2/resident-reconciliation-service/internal/health_check/service"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth answers as long as the process serves requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleReadiness answers 503 until the registry database is reachable and migrated.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	report := provider.NewHealthCheckProvider().GetHealthCheckService().CheckReadiness()
	status := http.StatusOK
	if report.Status != service.StatusReady {
		status = http.StatusServiceUnavailable
	}
	utils.WriteJSON(w, status, report)
}
