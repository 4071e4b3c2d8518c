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

package store

import (
	"fmt"
	"strings"

	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	"github.com/wso2/resident-reconciliation-service/internal/staging/model"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

// StagingStoreInterface is the resident staging buffer. Every method runs on the session it
// is handed so callers decide the transaction scope.
type StagingStoreInterface interface {
	Truncate(exec client.QueryExecutor) error
	InsertRaw(exec client.QueryExecutor, rows []model.RawResident) (int, error)
	PromoteRawToStaged(exec client.QueryExecutor, sentinels normalizer.SentinelSet) (int, error)
	ListStaged(exec client.QueryExecutor) ([]model.StagedResident, error)
	UpdateStatus(exec client.QueryExecutor, id int64, outcome model.Outcome) error
	CountByStatus(exec client.QueryExecutor) (model.StatusCounts, error)
	Snapshot(exec client.QueryExecutor, skippedSampleSize int) (*model.Snapshot, error)
}

// StagingStore is the SQL implementation of StagingStoreInterface.
type StagingStore struct {
	dbType string
}

// NewStagingStore creates a store issuing queries for dbType.
func NewStagingStore(dbType string) *StagingStore {
	return &StagingStore{dbType: dbType}
}

// Truncate empties both buffers. Called at the start of every resident upload.
func (s *StagingStore) Truncate(exec client.QueryExecutor) error {

	logger := log.GetLogger()
	for _, query := range []map[string]string{scripts.TruncateStagedResidents, scripts.TruncateRawResidents} {
		if _, err := exec.ExecuteQuery(query[s.dbType]); err != nil {
			errorMsg := "Failed to truncate resident staging tables."
			logger.Debug(errorMsg, log.Error(err))
			return errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
		}
	}
	return nil
}

// InsertRaw appends rows to the raw buffer in the given order.
func (s *StagingStore) InsertRaw(exec client.QueryExecutor, rows []model.RawResident) (int, error) {

	logger := log.GetLogger()
	inserted := 0
	for i, row := range rows {
		args := append(fieldArgs(row.ResidentFields), row.StandingOrder)
		if _, err := exec.ExecuteQuery(scripts.InsertRawResident[s.dbType], args...); err != nil {
			errorMsg := fmt.Sprintf("Failed to insert raw resident row %d.", i+1)
			logger.Debug(errorMsg, log.Error(err))
			return inserted, errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
		}
		inserted++
	}
	logger.Debug(fmt.Sprintf("Inserted %d raw resident rows", inserted))
	return inserted, nil
}

// PromoteRawToStaged copies every raw row into the staged buffer with sentinel tokens
// resolved to NULL, values trimmed and status unresolved. Returns the number of staged rows.
func (s *StagingStore) PromoteRawToStaged(exec client.QueryExecutor, sentinels normalizer.SentinelSet) (int, error) {

	logger := log.GetLogger()
	results, err := exec.ExecuteQuery(scripts.ListRawResidents[s.dbType])
	if err != nil {
		errorMsg := "Failed to read raw resident rows."
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
	}

	for _, row := range results {
		raw := rawFromRow(row)
		fields := resolveFields(raw.ResidentFields, sentinels)
		standingOrder := normalizer.ParseInt(sentinels.Resolve(raw.StandingOrder), 0)

		args := append([]interface{}{raw.ID}, fieldArgs(fields)...)
		args = append(args, standingOrder, string(model.StatusUnresolved))
		if _, err := exec.ExecuteQuery(scripts.InsertStagedResident[s.dbType], args...); err != nil {
			errorMsg := fmt.Sprintf("Failed to stage raw resident row %d.", raw.ID)
			logger.Debug(errorMsg, log.Error(err))
			return 0, errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
		}
	}
	logger.Debug(fmt.Sprintf("Promoted %d raw resident rows to staging", len(results)))
	return len(results), nil
}

// ListStaged returns the staged rows in upload order.
func (s *StagingStore) ListStaged(exec client.QueryExecutor) ([]model.StagedResident, error) {

	results, err := exec.ExecuteQuery(scripts.ListStagedResidents[s.dbType])
	if err != nil {
		errorMsg := "Failed to list staged residents."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
	}
	staged := make([]model.StagedResident, 0, len(results))
	for _, row := range results {
		staged = append(staged, stagedFromRow(row))
	}
	return staged, nil
}

// UpdateStatus records the reconciliation outcome of one staged row.
func (s *StagingStore) UpdateStatus(exec client.QueryExecutor, id int64, outcome model.Outcome) error {

	var flags, note interface{}
	if len(outcome.PhoneFlags) > 0 {
		flags = strings.Join(outcome.PhoneFlags, ",")
	}
	if outcome.Note != "" {
		note = outcome.Note
	}
	_, err := exec.ExecuteQuery(scripts.UpdateStagedResidentStatus[s.dbType], string(outcome.Status),
		outcome.EmailValid, flags, note, id)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update status of staged resident %d.", id)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
	}
	return nil
}

// CountByStatus returns the number of staged rows per status.
func (s *StagingStore) CountByStatus(exec client.QueryExecutor) (model.StatusCounts, error) {

	results, err := exec.ExecuteQuery(scripts.CountStagedResidentsByStatus[s.dbType])
	if err != nil {
		errorMsg := "Failed to count staged residents by status."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
	}
	counts := model.StatusCounts{}
	for _, row := range results {
		status := utils.ColumnString(row, "status")
		if status == nil {
			continue
		}
		counts[model.Status(*status)] = utils.ColumnInt(row, "count")
	}
	return counts, nil
}

// Snapshot collects the staging half of the debug view.
func (s *StagingStore) Snapshot(exec client.QueryExecutor, skippedSampleSize int) (*model.Snapshot, error) {

	logger := log.GetLogger()
	snapshot := &model.Snapshot{SkippedSample: []model.StagedResident{}}

	results, err := exec.ExecuteQuery(scripts.CountRawResidents[s.dbType])
	if err != nil {
		errorMsg := "Failed to count raw residents."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
	}
	if len(results) > 0 {
		snapshot.RawCount = utils.ColumnInt(results[0], "count")
	}

	results, err = exec.ExecuteQuery(scripts.GetFirstRawResident[s.dbType])
	if err != nil {
		errorMsg := "Failed to fetch the first raw resident."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
	}
	if len(results) > 0 {
		raw := rawFromRow(results[0])
		snapshot.RawSample = &raw
	}

	counts, err := s.CountByStatus(exec)
	if err != nil {
		return nil, err
	}
	snapshot.StagedCounts = counts
	for _, count := range counts {
		snapshot.StagedCount += count
	}

	results, err = exec.ExecuteQuery(scripts.ListStagedResidentsByStatus[s.dbType], string(model.StatusSkipped),
		skippedSampleSize)
	if err != nil {
		errorMsg := "Failed to fetch skipped staged residents."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.STAGE_RESIDENTS.WithDescription(errorMsg), err)
	}
	for _, row := range results {
		snapshot.SkippedSample = append(snapshot.SkippedSample, stagedFromRow(row))
	}
	return snapshot, nil
}

func fieldArgs(f model.ResidentFields) []interface{} {
	return []interface{}{f.Code, f.LastName, f.FatherName, f.MotherName, f.StreetName, f.BuildingNumber,
		f.Entrance, f.ApartmentNumber, f.Phone, f.Mobile, f.Mobile2, f.Email}
}

func resolveFields(f model.ResidentFields, sentinels normalizer.SentinelSet) model.ResidentFields {
	return model.ResidentFields{
		Code:            sentinels.Resolve(f.Code),
		LastName:        sentinels.Resolve(f.LastName),
		FatherName:      sentinels.Resolve(f.FatherName),
		MotherName:      sentinels.Resolve(f.MotherName),
		StreetName:      sentinels.Resolve(f.StreetName),
		BuildingNumber:  sentinels.Resolve(f.BuildingNumber),
		Entrance:        sentinels.Resolve(f.Entrance),
		ApartmentNumber: sentinels.Resolve(f.ApartmentNumber),
		Phone:           sentinels.Resolve(f.Phone),
		Mobile:          sentinels.Resolve(f.Mobile),
		Mobile2:         sentinels.Resolve(f.Mobile2),
		Email:           sentinels.Resolve(f.Email),
	}
}

// FieldsFromRow reads the canonical resident columns out of a query row.
func FieldsFromRow(row map[string]interface{}) model.ResidentFields {
	return model.ResidentFields{
		Code:            utils.ColumnString(row, "code"),
		LastName:        utils.ColumnString(row, "lastname"),
		FatherName:      utils.ColumnString(row, "father_name"),
		MotherName:      utils.ColumnString(row, "mother_name"),
		StreetName:      utils.ColumnString(row, "streetname"),
		BuildingNumber:  utils.ColumnString(row, "buildingnumber"),
		Entrance:        utils.ColumnString(row, "entrance"),
		ApartmentNumber: utils.ColumnString(row, "apartmentnumber"),
		Phone:           utils.ColumnString(row, "phone"),
		Mobile:          utils.ColumnString(row, "mobile"),
		Mobile2:         utils.ColumnString(row, "mobile2"),
		Email:           utils.ColumnString(row, "email"),
	}
}

func rawFromRow(row map[string]interface{}) model.RawResident {
	id, _ := utils.ColumnInt64(row, "id")
	return model.RawResident{
		ID:             id,
		ResidentFields: FieldsFromRow(row),
		StandingOrder:  utils.ColumnString(row, "standing_order"),
	}
}

func stagedFromRow(row map[string]interface{}) model.StagedResident {
	id, _ := utils.ColumnInt64(row, "id")
	rawID, _ := utils.ColumnInt64(row, "raw_id")
	staged := model.StagedResident{
		ID:             id,
		RawID:          rawID,
		ResidentFields: FieldsFromRow(row),
		StandingOrder:  utils.ColumnInt(row, "standing_order"),
		Status:         model.StatusUnresolved,
		EmailValid:     utils.ColumnBool(row, "email_valid"),
		Note:           utils.ColumnString(row, "note"),
	}
	if status := utils.ColumnString(row, "status"); status != nil && *status != "" {
		staged.Status = model.Status(*status)
	}
	if flags := utils.ColumnString(row, "phone_flags"); flags != nil && *flags != "" {
		staged.PhoneFlags = strings.Split(*flags, ",")
	}
	return staged
}
