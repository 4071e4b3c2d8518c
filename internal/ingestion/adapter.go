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

package ingestion

import (
	"fmt"
	"strings"

	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	ordersModel "github.com/wso2/resident-reconciliation-service/internal/orders/model"
	stagingModel "github.com/wso2/resident-reconciliation-service/internal/staging/model"
)

// MissingColumnsError is a structural failure: the upload lacks columns the import needs.
type MissingColumnsError struct {
	Missing []string
	// AnyOf is set when one of Missing is enough.
	AnyOf bool
}

func (e *MissingColumnsError) Error() string {
	if e.AnyOf {
		return fmt.Sprintf("at least one of the columns is required: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("required columns are missing: %s", strings.Join(e.Missing, ", "))
}

// ResidentUpload is a parsed resident file.
type ResidentUpload struct {
	Rows           []stagingModel.RawResident
	ColumnMappings []ColumnMapping
}

// OrderUpload is a parsed order file.
type OrderUpload struct {
	Rows           []ordersModel.OrderRow
	ColumnMappings []ColumnMapping
}

// ParseResidents maps a table onto raw resident rows. Cells matching a sentinel are absent.
func ParseResidents(table *Table, sentinels normalizer.SentinelSet) (*ResidentUpload, error) {

	index, mappings := canonicalize(table.Headers, ResidentAliases)
	if !index.has(ColumnCode) && !index.has(ColumnLastName) {
		return nil, &MissingColumnsError{Missing: []string{ColumnCode, ColumnLastName}, AnyOf: true}
	}

	upload := &ResidentUpload{
		Rows:           make([]stagingModel.RawResident, 0, len(table.Rows)),
		ColumnMappings: mappings,
	}
	for _, row := range table.Rows {
		get := func(name string) *string {
			return sentinels.Resolve(index.cell(row, name))
		}
		upload.Rows = append(upload.Rows, stagingModel.RawResident{
			ResidentFields: stagingModel.ResidentFields{
				Code:            get(ColumnCode),
				LastName:        get(ColumnLastName),
				FatherName:      get(ColumnFatherName),
				MotherName:      get(ColumnMotherName),
				StreetName:      get(ColumnStreetName),
				BuildingNumber:  get(ColumnBuildingNumber),
				Entrance:        get(ColumnEntrance),
				ApartmentNumber: get(ColumnApartmentNumber),
				Phone:           get(ColumnPhone),
				Mobile:          get(ColumnMobile),
				Mobile2:         get(ColumnMobile2),
				Email:           get(ColumnEmail),
			},
			StandingOrder: get(ColumnStandingOrder),
		})
	}
	return upload, nil
}

// ParseOrders maps a table onto order rows. Row numbers are 1 based and count data rows only.
func ParseOrders(table *Table, sentinels normalizer.SentinelSet) (*OrderUpload, error) {

	index, mappings := canonicalize(table.Headers, OrderAliases)
	var missing []string
	for _, required := range []string{ColumnOrderCode, ColumnGuestList} {
		if !index.has(required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	upload := &OrderUpload{
		Rows:           make([]ordersModel.OrderRow, 0, len(table.Rows)),
		ColumnMappings: mappings,
	}
	for i, row := range table.Rows {
		get := func(name string) *string {
			return sentinels.Resolve(index.cell(row, name))
		}
		upload.Rows = append(upload.Rows, ordersModel.OrderRow{
			RowNumber:     i + 1,
			OrderCode:     get(ColumnOrderCode),
			GuestList:     get(ColumnGuestList),
			Rating:        parseRating(get(ColumnRating)),
			CreatedAt:     get(ColumnCreatedAt),
			TotalAmount:   get(ColumnTotalAmount),
			PaymentMethod: get(ColumnPaymentMethod),
		})
	}
	return upload, nil
}

func parseRating(raw *string) *int {
	if raw == nil {
		return nil
	}
	value, err := normalizer.ParseCode(*raw)
	if err != nil {
		return nil
	}
	rating := int(value)
	return &rating
}
