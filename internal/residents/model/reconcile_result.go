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

package model

import (
	"github.com/wso2/resident-reconciliation-service/internal/ingestion"
	stagingModel "github.com/wso2/resident-reconciliation-service/internal/staging/model"
)

// RowOutcome is the reconciliation decision for one staged row.
type RowOutcome struct {
	StagedID      int64               `json:"staged_id"`
	RowNumber     int                 `json:"row_number"`
	Status        stagingModel.Status `json:"status"`
	PersonID      *int64              `json:"personid,omitempty"`
	ArchiveID     *int64              `json:"archive_id,omitempty"`
	ChangedFields []string            `json:"changed_fields,omitempty"`
	EmailValid    bool                `json:"email_valid"`
	PhoneFlags    []string            `json:"phone_flags,omitempty"`
	Note          string              `json:"note,omitempty"`
}

// ReconcileResult aggregates one reconciliation run.
type ReconcileResult struct {
	BatchID          string                    `json:"batch_id"`
	Counts           stagingModel.StatusCounts `json:"counts"`
	Archives         []ArchiveEntry            `json:"archives"`
	MutatedPersonIDs []int64                   `json:"mutated_person_ids"`
	Outcomes         []RowOutcome              `json:"outcomes"`
}

// NewReconcileResult returns an empty result with every terminal status present in Counts.
func NewReconcileResult(batchID string) *ReconcileResult {
	counts := stagingModel.StatusCounts{}
	for _, status := range stagingModel.TerminalStatuses {
		counts[status] = 0
	}
	return &ReconcileResult{
		BatchID:          batchID,
		Counts:           counts,
		Archives:         []ArchiveEntry{},
		MutatedPersonIDs: []int64{},
		Outcomes:         []RowOutcome{},
	}
}

// Record adds a row outcome to the aggregate.
func (r *ReconcileResult) Record(outcome RowOutcome, archive *ArchiveEntry, mutated bool) {
	r.Counts[outcome.Status]++
	r.Outcomes = append(r.Outcomes, outcome)
	if archive != nil {
		r.Archives = append(r.Archives, *archive)
	}
	if mutated && outcome.PersonID != nil {
		r.MutatedPersonIDs = append(r.MutatedPersonIDs, *outcome.PersonID)
	}
}

// UploadSummary is returned for a resident upload.
type UploadSummary struct {
	BatchID         string                    `json:"batch_id"`
	FileName        string                    `json:"file_name"`
	RowsLoaded      int                       `json:"rows_loaded"`
	RowsStaged      int                       `json:"rows_staged"`
	Counts          stagingModel.StatusCounts `json:"counts"`
	ArchivesCreated int                       `json:"archives_created"`
	RegistryTotal   int                       `json:"registry_total"`
	ColumnMappings  []ingestion.ColumnMapping `json:"column_mappings"`
	Result          *ReconcileResult          `json:"result"`
}

// DebugSnapshot is the inspection view of the last resident upload.
type DebugSnapshot struct {
	Staging       *stagingModel.Snapshot `json:"staging"`
	PersonCount   int                    `json:"person_count"`
	LatestPerson  *Person                `json:"latest_person,omitempty"`
	ArchiveCount  int                    `json:"archive_count"`
	RecentArchive []ArchiveEntry         `json:"recent_archives"`
}
