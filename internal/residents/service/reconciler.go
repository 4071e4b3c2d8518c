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
	"strconv"
	"time"

	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	"github.com/wso2/resident-reconciliation-service/internal/residents/model"
	"github.com/wso2/resident-reconciliation-service/internal/residents/store"
	stagingModel "github.com/wso2/resident-reconciliation-service/internal/staging/model"
	stagingStore "github.com/wso2/resident-reconciliation-service/internal/staging/store"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	traceCtx "github.com/wso2/resident-reconciliation-service/internal/system/context"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

// PhoneFlagTooShort marks a phone cell that had text but too few digits to be a number.
const PhoneFlagTooShort = "too_short"

// Reconciler applies staged rows to the registry, one transaction per row, in batch order.
type Reconciler struct {
	dbClient  client.DBClientInterface
	persons   store.PersonStoreInterface
	staging   stagingStore.StagingStoreInterface
	ingestion config.IngestionConfig
	now       func() time.Time
}

// NewReconciler creates a reconciler over the given stores.
func NewReconciler(dbClient client.DBClientInterface, persons store.PersonStoreInterface,
	staging stagingStore.StagingStoreInterface, ingestion config.IngestionConfig) *Reconciler {

	return &Reconciler{
		dbClient:  dbClient,
		persons:   persons,
		staging:   staging,
		ingestion: ingestion,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// rowDecision is what one row did to the registry.
type rowDecision struct {
	outcome model.RowOutcome
	archive *model.ArchiveEntry
	mutated bool
}

// Reconcile processes batch in order. A row that fails is rolled back alone, marked skipped
// and the batch continues. Only a cancelled context stops the run early.
func (r *Reconciler) Reconcile(ctx context.Context, batchID string, batch []stagingModel.StagedResident) (*model.ReconcileResult, error) {

	ctx, traceID := traceCtx.EnsureTraceID(ctx)
	logger := log.GetLogger().With(log.String("batch_id", batchID), log.TraceID(traceID))
	result := model.NewReconcileResult(batchID)

	for i, row := range batch {
		if err := ctx.Err(); err != nil {
			errorMsg := fmt.Sprintf("Reconciliation cancelled after %d of %d rows.", i, len(batch))
			logger.Debug(errorMsg, log.Error(err))
			return result, errors2.NewServerErrorWithTraceID(errors2.RECONCILE_RESIDENT.WithDescription(errorMsg), err, traceID)
		}

		decision, err := r.reconcileRow(ctx, row, i+1)
		if err != nil {
			logger.Warn("Resident row failed and was skipped",
				log.Int64("staged_id", row.ID), log.Int("row_number", i+1), log.Error(err))
			decision = r.markFailed(row, i+1, err)
		}
		result.Record(decision.outcome, decision.archive, decision.mutated)
		auditRow(logger, batchID, traceID, decision)
	}

	logger.Info("Resident batch reconciled",
		log.Int("rows", len(batch)),
		log.Int("inserted", result.Counts.Get(stagingModel.StatusInserted)),
		log.Int("merged", result.Counts.Get(stagingModel.StatusMerged)),
		log.Int("skipped", result.Counts.Get(stagingModel.StatusSkipped)),
		log.Int("partial_match", result.Counts.Get(stagingModel.StatusPartialMatch)),
		log.Int("archives", len(result.Archives)))
	return result, nil
}

// reconcileRow runs one row in its own transaction. The staged status is written in the
// same transaction as the registry change.
func (r *Reconciler) reconcileRow(ctx context.Context, row stagingModel.StagedResident, rowNumber int) (decision rowDecision, err error) {

	tx, err := r.dbClient.BeginTx(ctx)
	if err != nil {
		errorMsg := "Failed to begin transaction for resident row."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return decision, errors2.NewServerError(errors2.BEGIN_TRANSACTION.WithDescription(errorMsg), err)
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while reconciling row %d: %v", rowNumber, p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	decision, err = r.decide(tx, row, rowNumber)
	if err != nil {
		return decision, err
	}
	if err = r.staging.UpdateStatus(tx, row.ID, toStagingOutcome(decision.outcome)); err != nil {
		return decision, err
	}
	if err = tx.Commit(); err != nil {
		errorMsg := "Failed to commit resident row."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return decision, errors2.NewServerError(errors2.COMMIT_TRANSACTION.WithDescription(errorMsg), err)
	}
	return decision, nil
}

// decide is the matching algorithm for one row.
func (r *Reconciler) decide(exec client.QueryExecutor, row stagingModel.StagedResident, rowNumber int) (rowDecision, error) {

	attrs, emailValid, phoneFlags := r.normalize(row)
	outcome := model.RowOutcome{
		StagedID:   row.ID,
		RowNumber:  rowNumber,
		EmailValid: emailValid,
		PhoneFlags: phoneFlags,
	}
	key, keyComplete := row.SecondaryKey()

	if row.Code == nil || *row.Code == "" {
		if !keyComplete {
			outcome.Status = stagingModel.StatusSkipped
			outcome.Note = "no code and incomplete secondary key"
			return rowDecision{outcome: outcome}, nil
		}
		candidates, err := r.persons.FindBySecondaryKey(exec, key, false)
		if err != nil {
			return rowDecision{}, err
		}
		return r.applyCandidates(exec, outcome, candidates, nil, attrs)
	}

	code, err := normalizer.ParseCode(*row.Code)
	if err != nil {
		outcome.Status = stagingModel.StatusSkipped
		outcome.Note = fmt.Sprintf("malformed code %q", *row.Code)
		return rowDecision{outcome: outcome}, nil
	}

	existing, err := r.persons.GetByCode(exec, code)
	if err != nil {
		return rowDecision{}, err
	}
	if existing != nil {
		return r.merge(exec, outcome, *existing, &code, attrs)
	}

	// A coded row only ever claims a record that has no code of its own yet.
	var candidates []model.Person
	if keyComplete {
		if candidates, err = r.persons.FindBySecondaryKey(exec, key, true); err != nil {
			return rowDecision{}, err
		}
	}
	return r.applyCandidates(exec, outcome, candidates, &code, attrs)
}

func (r *Reconciler) applyCandidates(exec client.QueryExecutor, outcome model.RowOutcome,
	candidates []model.Person, code *int64, attrs model.Attributes) (rowDecision, error) {

	switch len(candidates) {
	case 0:
		personID, err := r.persons.Insert(exec, code, attrs, r.now())
		if err != nil {
			return rowDecision{}, err
		}
		outcome.Status = stagingModel.StatusInserted
		outcome.PersonID = &personID
		return rowDecision{outcome: outcome, mutated: true}, nil
	case 1:
		if code == nil {
			code = candidates[0].Code
		}
		return r.merge(exec, outcome, candidates[0], code, attrs)
	default:
		outcome.Status = stagingModel.StatusPartialMatch
		outcome.Note = fmt.Sprintf("%d registry records share the secondary key", len(candidates))
		return rowDecision{outcome: outcome}, nil
	}
}

// merge overwrites existing with the staged values. The old version is archived first, and
// only when something actually differs.
func (r *Reconciler) merge(exec client.QueryExecutor, outcome model.RowOutcome, existing model.Person,
	code *int64, attrs model.Attributes) (rowDecision, error) {

	outcome.Status = stagingModel.StatusMerged
	outcome.PersonID = &existing.PersonID

	changed := existing.Attributes.Diff(attrs)
	if !equalCode(existing.Code, code) {
		changed = append([]string{"code"}, changed...)
	}
	if len(changed) == 0 {
		return rowDecision{outcome: outcome}, nil
	}

	now := r.now()
	archive, err := r.persons.Archive(exec, existing, now)
	if err != nil {
		return rowDecision{}, err
	}
	if err := r.persons.Update(exec, existing.PersonID, code, attrs, now); err != nil {
		return rowDecision{}, err
	}
	outcome.ChangedFields = changed
	archiveID := archive.ArchiveID
	outcome.ArchiveID = &archiveID
	return rowDecision{outcome: outcome, archive: archive, mutated: true}, nil
}

// normalize produces the registry values for a staged row. An invalid email is kept and
// flagged, phones that are canonical but not dialable are kept and flagged.
func (r *Reconciler) normalize(row stagingModel.StagedResident) (model.Attributes, bool, []string) {

	var flags []string
	phone := func(field string, raw *string) *string {
		if raw == nil {
			return nil
		}
		canonical := normalizer.NormalizePhoneWithAreaCode(*raw, r.ingestion.DefaultAreaCode)
		switch {
		case canonical == nil:
			flags = append(flags, field+":"+PhoneFlagTooShort)
		case !normalizer.IsDialablePhone(*canonical, r.ingestion.PhoneRegion):
			flags = append(flags, field+":"+normalizer.PhoneFlagNotDialable)
		}
		return canonical
	}

	attrs := model.Attributes{
		LastName:        row.LastName,
		FatherName:      row.FatherName,
		MotherName:      row.MotherName,
		StreetName:      row.StreetName,
		BuildingNumber:  row.BuildingNumber,
		Entrance:        row.Entrance,
		ApartmentNumber: row.ApartmentNumber,
		Phone:           phone("phone", row.Phone),
		Mobile:          phone("mobile", row.Mobile),
		Mobile2:         phone("mobile2", row.Mobile2),
		StandingOrder:   row.StandingOrder,
	}
	emailValid := true
	if row.Email != nil {
		attrs.Email = normalizer.NormalizeEmail(*row.Email)
		emailValid = attrs.Email == nil || normalizer.IsValidEmail(*attrs.Email)
	}
	return attrs, emailValid, flags
}

// markFailed records a failed row as skipped outside any transaction.
func (r *Reconciler) markFailed(row stagingModel.StagedResident, rowNumber int, cause error) rowDecision {

	outcome := model.RowOutcome{
		StagedID:   row.ID,
		RowNumber:  rowNumber,
		Status:     stagingModel.StatusSkipped,
		EmailValid: true,
		Note:       "reconciliation failed: " + cause.Error(),
	}
	if err := r.staging.UpdateStatus(r.dbClient, row.ID, toStagingOutcome(outcome)); err != nil {
		log.GetLogger().Error("Failed to record skipped status for resident row",
			log.Int64("staged_id", row.ID), log.Error(err))
	}
	return rowDecision{outcome: outcome}
}

func toStagingOutcome(o model.RowOutcome) stagingModel.Outcome {
	return stagingModel.Outcome{
		Status:     o.Status,
		EmailValid: o.EmailValid,
		PhoneFlags: o.PhoneFlags,
		Note:       o.Note,
	}
}

func equalCode(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

var auditActions = map[stagingModel.Status]string{
	stagingModel.StatusInserted:     log.ActionInsertResident,
	stagingModel.StatusMerged:       log.ActionMergeResident,
	stagingModel.StatusPartialMatch: log.ActionPartialMatchResident,
	stagingModel.StatusSkipped:      log.ActionSkipResident,
}

func auditRow(logger *log.Logger, batchID, traceID string, decision rowDecision) {

	outcome := decision.outcome
	targetID := "staged:" + strconv.FormatInt(outcome.StagedID, 10)
	if outcome.PersonID != nil {
		targetID = strconv.FormatInt(*outcome.PersonID, 10)
	}
	data := map[string]interface{}{
		"row_number": outcome.RowNumber,
		"status":     string(outcome.Status),
	}
	if len(outcome.ChangedFields) > 0 {
		data["changed_fields"] = outcome.ChangedFields
	}
	if outcome.Note != "" {
		data["note"] = outcome.Note
	}
	logger.Audit(log.AuditEvent{
		InitiatorID:   batchID,
		InitiatorType: log.InitiatorTypeSystem,
		TargetID:      targetID,
		TargetType:    log.TargetTypeResident,
		ActionID:      auditActions[outcome.Status],
		TraceID:       traceID,
		Data:          data,
	})
}
