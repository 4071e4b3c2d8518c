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
	"net/http"
	"strings"
	"time"

	"github.com/wso2/resident-reconciliation-service/internal/distribution/model"
	"github.com/wso2/resident-reconciliation-service/internal/distribution/store"
	"github.com/wso2/resident-reconciliation-service/internal/ingestion"
	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	ordersModel "github.com/wso2/resident-reconciliation-service/internal/orders/model"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	traceCtx "github.com/wso2/resident-reconciliation-service/internal/system/context"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/lock"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/provider"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

type DistributionServiceInterface interface {
	QueueOuterOrders(ctx context.Context, file *utils.UploadedFile) (*model.DistributionReport, error)
}

// DistributionService queues externally placed orders and hands them to the distribution
// function of the database.
type DistributionService struct {
	dbClient client.DBClientInterface
	orders   store.OuterOrderStoreInterface
	lock     lock.UploadLock
	config   config.Config
	now      func() time.Time
}

func GetDistributionService() (DistributionServiceInterface, error) {

	dbProvider := provider.NewDBProvider()
	dbClient, err := dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for distribution service."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.DB_CLIENT_INIT.WithDescription(errorMsg), err)
	}
	dbType := dbProvider.GetDBType()
	return NewDistributionService(dbClient, dbType, lock.GetUploadLock(dbType), config.GetRuntime().Config), nil
}

func NewDistributionService(dbClient client.DBClientInterface, dbType string, uploadLock lock.UploadLock,
	cfg config.Config) *DistributionService {

	return &DistributionService{
		dbClient: dbClient,
		orders:   store.NewOuterOrderStore(dbType),
		lock:     uploadLock,
		config:   cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// QueueOuterOrders stores every order of the file as waiting, runs distribution when it is
// enabled and reports the resulting queue state.
func (s *DistributionService) QueueOuterOrders(ctx context.Context, file *utils.UploadedFile) (*model.DistributionReport, error) {

	ctx, traceID := traceCtx.EnsureTraceID(ctx)
	logger := log.GetLogger().With(log.TraceID(traceID), log.String("file", file.Name))

	table, err := ingestion.ReadTable(file.Name, file.Data)
	if err != nil {
		return nil, ingestion.ToClientError(err, file.Name, traceID)
	}
	upload, err := ingestion.ParseOrders(table, normalizer.NewSentinelSet(s.config.Ingestion.Sentinels))
	if err != nil {
		return nil, ingestion.ToClientError(err, file.Name, traceID)
	}

	acquired, err := s.lock.Acquire(ctx, constants.OuterOrderLockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errors2.NewClientErrorWithTraceID(errors2.UPLOAD_IN_PROGRESS, http.StatusConflict, traceID)
	}
	defer func() {
		if err := s.lock.Release(constants.OuterOrderLockKey); err != nil {
			logger.Error("Failed to release outer order lock", log.Error(err))
		}
	}()

	queued, err := s.queue(ctx, upload.Rows)
	if err != nil {
		return nil, err
	}
	report := &model.DistributionReport{FileName: file.Name, RowsQueued: queued, DistributionSkipped: true}

	if s.config.Distribution.Enabled {
		distributed, err := s.distribute(ctx)
		switch {
		case isUnsupported(err):
			logger.Warn("Distribution is enabled but the database does not provide it")
		case err != nil:
			return nil, err
		default:
			report.DistributionSkipped = false
			report.Distributed = distributed
		}
	}

	logger.Info("Outer orders queued", log.Int("rows_queued", queued),
		log.Bool("distribution_skipped", report.DistributionSkipped))

	if report.Statuses, err = s.orders.CountByStatus(s.dbClient); err != nil {
		return nil, err
	}
	if report.Errors, err = s.orders.GroupErrors(s.dbClient); err != nil {
		return nil, err
	}

	logger.Audit(log.AuditEvent{
		InitiatorID:   traceID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      file.Name,
		TargetType:    log.TargetTypeUpload,
		ActionID:      log.ActionOuterOrderDistribution,
		TraceID:       traceID,
		Data:          map[string]interface{}{"queued": queued, "distributed": report.Distributed},
	})
	return report, nil
}

func (s *DistributionService) queue(ctx context.Context, rows []ordersModel.OrderRow) (int, error) {

	tx, err := s.dbClient.BeginTx(ctx)
	if err != nil {
		errorMsg := "Failed to begin outer order transaction."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.BEGIN_TRANSACTION.WithDescription(errorMsg), err)
	}
	defer func() { _ = tx.Rollback() }()

	queued := 0
	createdAt := s.now()
	for _, row := range rows {
		order := &model.OuterOrder{
			SenderCode:  trimmed(row.OrderCode),
			Invitees:    trimmed(row.GuestList),
			PackageSize: PackageSizeForRating(row.Rating, s.config.Distribution.PackageSizes),
			Origin:      constants.OuterOrderOrigin,
			Status:      constants.OuterOrderStatusWaiting,
			CreatedAt:   createdAt,
		}
		if order.SenderCode == "" && order.Invitees == "" {
			continue
		}
		if _, err := s.orders.Insert(tx, order); err != nil {
			return 0, err
		}
		queued++
	}

	if err := tx.Commit(); err != nil {
		errorMsg := "Failed to commit outer orders."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.COMMIT_TRANSACTION.WithDescription(errorMsg), err)
	}
	return queued, nil
}

func (s *DistributionService) distribute(ctx context.Context) (int64, error) {

	tx, err := s.dbClient.BeginTx(ctx)
	if err != nil {
		errorMsg := "Failed to begin distribution transaction."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.BEGIN_TRANSACTION.WithDescription(errorMsg), err)
	}
	defer func() { _ = tx.Rollback() }()

	distributed, err := s.orders.DistributeAll(tx)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		errorMsg := "Failed to commit distribution."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.COMMIT_TRANSACTION.WithDescription(errorMsg), err)
	}
	return distributed, nil
}

func isUnsupported(err error) bool {
	return errors2.HasCode(err, errors2.DISTRIBUTION_UNSUPPORTED)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
