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
	"time"

	"github.com/wso2/resident-reconciliation-service/internal/residents/model"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/client"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

// PersonStoreInterface is the resident registry and its archive.
type PersonStoreInterface interface {
	GetByCode(exec client.QueryExecutor, code int64) (*model.Person, error)
	FindBySecondaryKey(exec client.QueryExecutor, key [5]string, uncodedOnly bool) ([]model.Person, error)
	Insert(exec client.QueryExecutor, code *int64, attrs model.Attributes, now time.Time) (int64, error)
	Update(exec client.QueryExecutor, personID int64, code *int64, attrs model.Attributes, now time.Time) error
	Archive(exec client.QueryExecutor, person model.Person, now time.Time) (*model.ArchiveEntry, error)
	Count(exec client.QueryExecutor) (int, error)
	Latest(exec client.QueryExecutor) (*model.Person, error)
	CountArchives(exec client.QueryExecutor) (int, error)
	RecentArchives(exec client.QueryExecutor, limit int) ([]model.ArchiveEntry, error)
}

// PersonStore is the SQL implementation of PersonStoreInterface.
type PersonStore struct {
	dbType string
}

// NewPersonStore creates a store issuing queries for dbType.
func NewPersonStore(dbType string) *PersonStore {
	return &PersonStore{dbType: dbType}
}

// GetByCode returns the person holding the external code, nil when there is none.
func (s *PersonStore) GetByCode(exec client.QueryExecutor, code int64) (*model.Person, error) {

	results, err := exec.ExecuteQuery(scripts.GetPersonByCode[s.dbType], code)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch person with code: %d", code)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.FETCH_RESIDENT.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	person := personFromRow(results[0])
	return &person, nil
}

// FindBySecondaryKey returns every person matching the full secondary key. With uncodedOnly
// only records without an external code are candidates.
func (s *PersonStore) FindBySecondaryKey(exec client.QueryExecutor, key [5]string,
	uncodedOnly bool) ([]model.Person, error) {

	query := scripts.FindPersonsBySecondaryKey[s.dbType]
	if uncodedOnly {
		query = scripts.FindUncodedPersonsBySecondaryKey[s.dbType]
	}
	results, err := exec.ExecuteQuery(query, key[0], key[1], key[2], key[3], key[4])
	if err != nil {
		errorMsg := "Failed to look up persons by secondary key."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.FETCH_RESIDENT.WithDescription(errorMsg), err)
	}
	persons := make([]model.Person, 0, len(results))
	for _, row := range results {
		persons = append(persons, personFromRow(row))
	}
	return persons, nil
}

// Insert creates a person and returns its surrogate id.
func (s *PersonStore) Insert(exec client.QueryExecutor, code *int64, attrs model.Attributes,
	now time.Time) (int64, error) {

	args := append([]interface{}{code}, attributeArgs(attrs)...)
	args = append(args, now, now)
	results, err := exec.ExecuteQuery(scripts.InsertPerson[s.dbType], args...)
	if err != nil {
		errorMsg := "Failed to insert person."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.SAVE_RESIDENT.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		errorMsg := "Insert of person returned no id."
		return 0, errors2.NewServerError(errors2.SAVE_RESIDENT.WithDescription(errorMsg), nil)
	}
	personID, ok := utils.ColumnInt64(results[0], "personid")
	if !ok {
		errorMsg := "Insert of person returned an invalid id."
		return 0, errors2.NewServerError(errors2.SAVE_RESIDENT.WithDescription(errorMsg), nil)
	}
	return personID, nil
}

// Update overwrites every mutable field of a person, nulls included.
func (s *PersonStore) Update(exec client.QueryExecutor, personID int64, code *int64, attrs model.Attributes,
	now time.Time) error {

	args := append([]interface{}{code}, attributeArgs(attrs)...)
	args = append(args, now, personID)
	if _, err := exec.ExecuteQuery(scripts.UpdatePerson[s.dbType], args...); err != nil {
		errorMsg := fmt.Sprintf("Failed to update person: %d", personID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.SAVE_RESIDENT.WithDescription(errorMsg), err)
	}
	return nil
}

// Archive stores a snapshot of person as it is now.
func (s *PersonStore) Archive(exec client.QueryExecutor, person model.Person, now time.Time) (*model.ArchiveEntry, error) {

	args := append([]interface{}{person.PersonID, person.Code}, attributeArgs(person.Attributes)...)
	args = append(args, now)
	results, err := exec.ExecuteQuery(scripts.InsertPersonArchive[s.dbType], args...)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to archive person: %d", person.PersonID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ARCHIVE_RESIDENT.WithDescription(errorMsg), err)
	}
	entry := &model.ArchiveEntry{
		PersonID:   person.PersonID,
		Code:       person.Code,
		Attributes: person.Attributes,
		ArchivedAt: now,
	}
	if len(results) > 0 {
		entry.ArchiveID, _ = utils.ColumnInt64(results[0], "archive_id")
	}
	return entry, nil
}

// Count returns the registry size.
func (s *PersonStore) Count(exec client.QueryExecutor) (int, error) {
	return s.count(exec, scripts.CountPersons, "Failed to count persons.")
}

// CountArchives returns the number of archive entries.
func (s *PersonStore) CountArchives(exec client.QueryExecutor) (int, error) {
	return s.count(exec, scripts.CountPersonArchives, "Failed to count person archive entries.")
}

func (s *PersonStore) count(exec client.QueryExecutor, query map[string]string, errorMsg string) (int, error) {

	results, err := exec.ExecuteQuery(query[s.dbType])
	if err != nil {
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.FETCH_RESIDENT.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return utils.ColumnInt(results[0], "count"), nil
}

// Latest returns the most recently created person, nil for an empty registry.
func (s *PersonStore) Latest(exec client.QueryExecutor) (*model.Person, error) {

	results, err := exec.ExecuteQuery(scripts.GetLatestPerson[s.dbType])
	if err != nil {
		errorMsg := "Failed to fetch the latest person."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.FETCH_RESIDENT.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	person := personFromRow(results[0])
	return &person, nil
}

// RecentArchives returns the newest archive entries first.
func (s *PersonStore) RecentArchives(exec client.QueryExecutor, limit int) ([]model.ArchiveEntry, error) {

	results, err := exec.ExecuteQuery(scripts.ListRecentPersonArchives[s.dbType], limit)
	if err != nil {
		errorMsg := "Failed to fetch recent archive entries."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.FETCH_RESIDENT.WithDescription(errorMsg), err)
	}
	entries := make([]model.ArchiveEntry, 0, len(results))
	for _, row := range results {
		archiveID, _ := utils.ColumnInt64(row, "archive_id")
		personID, _ := utils.ColumnInt64(row, "personid")
		entries = append(entries, model.ArchiveEntry{
			ArchiveID:  archiveID,
			PersonID:   personID,
			Code:       utils.ColumnInt64Ptr(row, "code"),
			Attributes: attributesFromRow(row),
			ArchivedAt: utils.ColumnTime(row, "archived_at"),
		})
	}
	return entries, nil
}

func attributeArgs(a model.Attributes) []interface{} {
	return []interface{}{a.LastName, a.FatherName, a.MotherName, a.StreetName, a.BuildingNumber, a.Entrance,
		a.ApartmentNumber, a.Phone, a.Mobile, a.Mobile2, a.Email, a.StandingOrder}
}

func attributesFromRow(row map[string]interface{}) model.Attributes {
	return model.Attributes{
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
		StandingOrder:   utils.ColumnInt(row, "standing_order"),
	}
}

func personFromRow(row map[string]interface{}) model.Person {
	personID, _ := utils.ColumnInt64(row, "personid")
	return model.Person{
		PersonID:   personID,
		Code:       utils.ColumnInt64Ptr(row, "code"),
		Attributes: attributesFromRow(row),
		AutoReturn: utils.ColumnBool(row, "auto_return"),
		CreatedAt:  utils.ColumnTime(row, "created_at"),
		UpdatedAt:  utils.ColumnTime(row, "updated_at"),
	}
}
