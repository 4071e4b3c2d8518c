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
	"fmt"
	"time"

	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/provider"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

const (
	StatusReady    = "ready"
	StatusNotReady = "not ready"
)

// Readiness describes whether the registry database can take uploads.
type Readiness struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	LatencyMs int64  `json:"latency_ms"`
	Residents *int   `json:"residents,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthCheckServiceInterface interface {
	CheckReadiness() *Readiness
}

// HealthCheckService pings the database and confirms the registry schema is installed.
type HealthCheckService struct {
	connect func() (client.DBClientInterface, string, error)
}

func GetHealthCheckService() HealthCheckServiceInterface {
	return NewHealthCheckService(func() (client.DBClientInterface, string, error) {
		dbProvider := provider.NewDBProvider()
		dbClient, err := dbProvider.GetDBClient()
		return dbClient, dbProvider.GetDBType(), err
	})
}

func NewHealthCheckService(connect func() (client.DBClientInterface, string, error)) *HealthCheckService {
	return &HealthCheckService{connect: connect}
}

func (h *HealthCheckService) CheckReadiness() *Readiness {

	started := time.Now()
	dbClient, dbType, err := h.connect()
	report := &Readiness{Status: StatusNotReady, Database: dbType}
	if err != nil {
		return report.fail(fmt.Errorf("failed to create database client: %w", err))
	}

	if _, err = dbClient.ExecuteQuery(scripts.Ping[dbType]); err != nil {
		return report.fail(fmt.Errorf("database connectivity check failed: %w", err))
	}
	report.LatencyMs = time.Since(started).Milliseconds()

	results, err := dbClient.ExecuteQuery(scripts.CountPersons[dbType])
	if err != nil || len(results) == 0 {
		return report.fail(fmt.Errorf("registry schema is not installed: %v", err))
	}
	residents := utils.ColumnInt(results[0], "count")
	report.Residents = &residents
	report.Status = StatusReady
	return report
}

func (r *Readiness) fail(err error) *Readiness {
	log.GetLogger().Warn("Readiness check failed", log.String("database", r.Database), log.Error(err))
	r.Error = err.Error()
	return r
}
