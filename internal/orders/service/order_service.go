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
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wso2/resident-reconciliation-service/internal/ingestion"
	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	"github.com/wso2/resident-reconciliation-service/internal/orders/model"
	"github.com/wso2/resident-reconciliation-service/internal/orders/store"
	"github.com/wso2/resident-reconciliation-service/internal/system/cache"
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

// ImportResult is returned for an order import and kept for later retrieval by import id.
type ImportResult struct {
	FileName       string                    `json:"file_name"`
	RowsLoaded     int                       `json:"rows_loaded"`
	Statistics     *model.ImportStatistics   `json:"statistics"`
	Preview        model.StatisticsPreview   `json:"preview"`
	ColumnMappings []ingestion.ColumnMapping `json:"column_mappings"`
}

type OrderServiceInterface interface {
	ImportOrders(ctx context.Context, file *utils.UploadedFile) (*ImportResult, error)
	GetImportResult(ctx context.Context, importID string) (*ImportResult, error)
}

// OrderService resolves order uploads into delivery pairs.
type OrderService struct {
	dbClient client.DBClientInterface
	pairs    store.DeliveryPairStoreInterface
	lock     lock.UploadLock
	config   config.Config
	results  *cache.Cache[*ImportResult]
	now      func() time.Time
}

var (
	importResults     *cache.Cache[*ImportResult]
	importResultsOnce sync.Once
)

// ImportResultCache returns the process-wide cache of import results, created with the
// configured TTL on first use.
func ImportResultCache() *cache.Cache[*ImportResult] {
	importResultsOnce.Do(func() {
		ttl := time.Duration(config.GetRuntime().Config.Orders.StatsTTLMinutes) * time.Minute
		importResults = cache.NewCache[*ImportResult](ttl)
	})
	return importResults
}

// GetOrderService returns a service bound to the shared database pool and result cache.
func GetOrderService() (OrderServiceInterface, error) {

	dbProvider := provider.NewDBProvider()
	dbClient, err := dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for order service."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.DB_CLIENT_INIT.WithDescription(errorMsg), err)
	}
	dbType := dbProvider.GetDBType()
	return NewOrderService(dbClient, dbType, lock.GetUploadLock(dbType), config.GetRuntime().Config,
		ImportResultCache()), nil
}

func NewOrderService(dbClient client.DBClientInterface, dbType string, uploadLock lock.UploadLock,
	cfg config.Config, results *cache.Cache[*ImportResult]) *OrderService {

	return &OrderService{
		dbClient: dbClient,
		pairs:    store.NewDeliveryPairStore(dbType),
		lock:     uploadLock,
		config:   cfg,
		results:  results,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ImportOrders resolves every order row of the file inside one transaction, so a pair
// created by an earlier row is a duplicate for a later one.
func (s *OrderService) ImportOrders(ctx context.Context, file *utils.UploadedFile) (*ImportResult, error) {

	ctx, traceID := traceCtx.EnsureTraceID(ctx)
	logger := log.GetLogger().With(log.TraceID(traceID), log.String("file", file.Name))

	table, err := ingestion.ReadTable(file.Name, file.Data)
	if err != nil {
		logger.Debug("Order upload could not be read", log.Error(err))
		return nil, ingestion.ToClientError(err, file.Name, traceID)
	}
	upload, err := ingestion.ParseOrders(table, normalizer.NewSentinelSet(s.config.Ingestion.Sentinels))
	if err != nil {
		logger.Debug("Order upload rejected", log.Error(err))
		return nil, ingestion.ToClientError(err, file.Name, traceID)
	}

	acquired, err := s.lock.Acquire(ctx, constants.OrderUploadLockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errors2.NewClientErrorWithTraceID(errors2.UPLOAD_IN_PROGRESS, http.StatusConflict, traceID)
	}
	defer func() {
		if err := s.lock.Release(constants.OrderUploadLockKey); err != nil {
			logger.Error("Failed to release order upload lock", log.Error(err))
		}
	}()

	started := s.now()
	stats, err := s.resolve(ctx, upload.Rows, traceID)
	if err != nil {
		return nil, err
	}
	logger.Info("Order import finished", log.String("import_id", stats.ImportID),
		log.Int("successful_pairs", stats.SuccessfulPairs), log.Duration("elapsed_ms", s.now().Sub(started)))

	result := &ImportResult{
		FileName:       file.Name,
		RowsLoaded:     len(upload.Rows),
		Statistics:     stats,
		Preview:        stats.Preview(s.config.Ingestion.PreviewCap),
		ColumnMappings: upload.ColumnMappings,
	}
	s.results.Set(stats.ImportID, result)

	logger.Audit(log.AuditEvent{
		InitiatorID:   stats.ImportID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      file.Name,
		TargetType:    log.TargetTypeUpload,
		ActionID:      log.ActionOrderUpload,
		TraceID:       traceID,
		Data: map[string]int{
			"total_orders":     stats.TotalOrders,
			"total_pairs":      stats.TotalPairs,
			"successful_pairs": stats.SuccessfulPairs,
			"failed_pairs":     stats.FailedPairs,
		},
	})
	return result, nil
}

func (s *OrderService) resolve(ctx context.Context, rows []model.OrderRow, traceID string) (*model.ImportStatistics, error) {

	tx, err := s.dbClient.BeginTx(ctx)
	if err != nil {
		errorMsg := "Failed to begin order import transaction."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.BEGIN_TRANSACTION.WithDescription(errorMsg), err)
	}
	defer func() { _ = tx.Rollback() }()

	stats := model.NewImportStatistics(uuid.New().String())
	session := &pairSession{
		exec:       tx,
		store:      s.pairs,
		orderDate:  s.now(),
		originType: s.config.Orders.OriginType,
		importID:   stats.ImportID,
		traceID:    traceID,
	}
	resolver := NewOrderResolver(session, session, s.config.Orders.InvalidSenderPolicy)
	if err := resolver.ResolveOrders(ctx, rows, stats); err != nil {
		errorMsg := fmt.Sprintf("Order import %s failed and was rolled back.", stats.ImportID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.RESOLVE_ORDERS.WithDescription(errorMsg), err)
	}
	if err := tx.Commit(); err != nil {
		errorMsg := "Failed to commit order import."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.COMMIT_TRANSACTION.WithDescription(errorMsg), err)
	}
	return stats, nil
}

// GetImportResult returns a cached import result.
func (s *OrderService) GetImportResult(ctx context.Context, importID string) (*ImportResult, error) {

	result, ok := s.results.Get(importID)
	if !ok {
		return nil, errors2.NewClientErrorWithTraceID(errors2.IMPORT_NOT_FOUND.WithDescription(
			fmt.Sprintf("No statistics are held for import %s.", importID)), http.StatusNotFound,
			traceCtx.GetTraceID(ctx))
	}
	return result, nil
}

// pairSession binds the pair store to the import transaction.
type pairSession struct {
	exec       client.QueryExecutor
	store      store.DeliveryPairStoreInterface
	orderDate  time.Time
	originType string
	importID   string
	traceID    string
}

func (p *pairSession) LookupPersonID(code int64) (int64, bool, error) {
	return p.store.LookupPersonID(p.exec, code)
}

func (p *pairSession) PairExists(senderID, receiverID int64) (bool, error) {
	return p.store.PairExists(p.exec, senderID, receiverID)
}

func (p *pairSession) CreatePair(senderID, receiverID int64) error {

	orderID, err := p.store.InsertPair(p.exec, senderID, receiverID, p.orderDate, p.originType)
	if err != nil {
		return err
	}
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   p.importID,
		InitiatorType: log.InitiatorTypeSystem,
		TargetID:      strconv.FormatInt(orderID, 10),
		TargetType:    log.TargetTypeDeliveryPair,
		ActionID:      log.ActionCreateDeliveryPair,
		TraceID:       p.traceID,
		Data:          map[string]int64{"sender_id": senderID, "receiver_id": receiverID},
	})
	return nil
}
