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

	"github.com/google/uuid"
	"github.com/wso2/resident-reconciliation-service/internal/ingestion"
	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	"github.com/wso2/resident-reconciliation-service/internal/residents/model"
	"github.com/wso2/resident-reconciliation-service/internal/residents/store"
	stagingStore "github.com/wso2/resident-reconciliation-service/internal/staging/store"
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

const recentArchiveLimit = 10
const skippedSampleSize = 5

type ResidentServiceInterface interface {
	UploadResidents(ctx context.Context, file *utils.UploadedFile) (*model.UploadSummary, error)
	GetDebugSnapshot(ctx context.Context) (*model.DebugSnapshot, error)
}

// ResidentService runs resident uploads end to end: parse, stage, reconcile.
type ResidentService struct {
	dbClient client.DBClientInterface
	persons  store.PersonStoreInterface
	staging  stagingStore.StagingStoreInterface
	lock     lock.UploadLock
	config   config.Config
}

// GetResidentService returns a service bound to the shared database pool.
func GetResidentService() (ResidentServiceInterface, error) {

	dbProvider := provider.NewDBProvider()
	dbClient, err := dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for resident service."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.DB_CLIENT_INIT.WithDescription(errorMsg), err)
	}
	dbType := dbProvider.GetDBType()
	return NewResidentService(dbClient, dbType, lock.GetUploadLock(dbType), config.GetRuntime().Config), nil
}

// NewResidentService wires a service over explicit collaborators.
func NewResidentService(dbClient client.DBClientInterface, dbType string, uploadLock lock.UploadLock,
	cfg config.Config) *ResidentService {

	return &ResidentService{
		dbClient: dbClient,
		persons:  store.NewPersonStore(dbType),
		staging:  stagingStore.NewStagingStore(dbType),
		lock:     uploadLock,
		config:   cfg,
	}
}

func (s *ResidentService) reconciler() *Reconciler {
	return NewReconciler(s.dbClient, s.persons, s.staging, s.config.Ingestion)
}

// UploadResidents replaces the staging area with the file's rows and reconciles them into
// the registry. A file missing its identity columns is rejected before staging is touched.
func (s *ResidentService) UploadResidents(ctx context.Context, file *utils.UploadedFile) (*model.UploadSummary, error) {

	ctx, traceID := traceCtx.EnsureTraceID(ctx)
	logger := log.GetLogger().With(log.TraceID(traceID), log.String("file", file.Name))

	table, err := ingestion.ReadTable(file.Name, file.Data)
	if err != nil {
		logger.Debug("Resident upload could not be read", log.Error(err))
		return nil, ingestion.ToClientError(err, file.Name, traceID)
	}
	sentinels := normalizer.NewSentinelSet(s.config.Ingestion.Sentinels)
	upload, err := ingestion.ParseResidents(table, sentinels)
	if err != nil {
		logger.Debug("Resident upload rejected", log.Error(err))
		return nil, ingestion.ToClientError(err, file.Name, traceID)
	}

	acquired, err := s.lock.Acquire(ctx, constants.ResidentUploadLockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errors2.NewClientErrorWithTraceID(errors2.UPLOAD_IN_PROGRESS, http.StatusConflict, traceID)
	}
	defer func() {
		if err := s.lock.Release(constants.ResidentUploadLockKey); err != nil {
			logger.Error("Failed to release resident upload lock", log.Error(err))
		}
	}()

	batchID := uuid.New().String()
	staged, err := s.stage(ctx, upload, sentinels)
	if err != nil {
		return nil, err
	}
	batch, err := s.staging.ListStaged(s.dbClient)
	if err != nil {
		return nil, err
	}

	result, err := s.reconciler().Reconcile(ctx, batchID, batch)
	if err != nil {
		return nil, err
	}
	total, err := s.persons.Count(s.dbClient)
	if err != nil {
		return nil, err
	}

	summary := &model.UploadSummary{
		BatchID:         batchID,
		FileName:        file.Name,
		RowsLoaded:      len(upload.Rows),
		RowsStaged:      staged,
		Counts:          result.Counts,
		ArchivesCreated: len(result.Archives),
		RegistryTotal:   total,
		ColumnMappings:  upload.ColumnMappings,
		Result:          result,
	}
	logger.Audit(log.AuditEvent{
		InitiatorID:   batchID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      file.Name,
		TargetType:    log.TargetTypeUpload,
		ActionID:      log.ActionResidentUpload,
		TraceID:       traceID,
		Data: map[string]int{
			"rows_loaded":    summary.RowsLoaded,
			"rows_staged":    summary.RowsStaged,
			"archives":       summary.ArchivesCreated,
			"registry_total": summary.RegistryTotal,
		},
	})
	return summary, nil
}

// stage truncates both staging tables and loads the upload, all in one transaction.
func (s *ResidentService) stage(ctx context.Context, upload *ingestion.ResidentUpload,
	sentinels normalizer.SentinelSet) (int, error) {

	tx, err := s.dbClient.BeginTx(ctx)
	if err != nil {
		errorMsg := "Failed to begin staging transaction."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.BEGIN_TRANSACTION.WithDescription(errorMsg), err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.staging.Truncate(tx); err != nil {
		return 0, err
	}
	if _, err := s.staging.InsertRaw(tx, upload.Rows); err != nil {
		return 0, err
	}
	staged, err := s.staging.PromoteRawToStaged(tx, sentinels)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		errorMsg := "Failed to commit staging transaction."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.COMMIT_TRANSACTION.WithDescription(errorMsg), err)
	}
	return staged, nil
}

// GetDebugSnapshot returns the inspection view of staging and the registry.
func (s *ResidentService) GetDebugSnapshot(_ context.Context) (*model.DebugSnapshot, error) {

	snapshot, err := s.staging.Snapshot(s.dbClient, skippedSampleSize)
	if err != nil {
		return nil, err
	}
	personCount, err := s.persons.Count(s.dbClient)
	if err != nil {
		return nil, err
	}
	latest, err := s.persons.Latest(s.dbClient)
	if err != nil {
		return nil, err
	}
	archiveCount, err := s.persons.CountArchives(s.dbClient)
	if err != nil {
		return nil, err
	}
	archives, err := s.persons.RecentArchives(s.dbClient, recentArchiveLimit)
	if err != nil {
		return nil, err
	}
	return &model.DebugSnapshot{
		Staging:       snapshot,
		PersonCount:   personCount,
		LatestPerson:  latest,
		ArchiveCount:  archiveCount,
		RecentArchive: archives,
	}, nil
}
