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

	"github.com/wso2/resident-reconciliation-service/internal/residents/handler"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
)

type ResidentsService struct {
	residentsHandler *handler.ResidentsHandler
}

func NewResidentsService() *ResidentsService {

	return &ResidentsService{
		residentsHandler: handler.NewResidentsHandler(),
	}
}

// Route serves /residents/upload and /residents/debug.
func (s *ResidentsService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, constants.ResidentsApiPath), "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/upload":
		s.residentsHandler.UploadResidents(w, r)
	case method == http.MethodGet && path == "/debug":
		s.residentsHandler.GetDebugSnapshot(w, r)
	default:
		http.NotFound(w, r)
	}
}
