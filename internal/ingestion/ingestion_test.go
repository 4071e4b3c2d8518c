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
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/normalizer"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/xuri/excelize/v2"
)

func sentinels() normalizer.SentinelSet {
	return normalizer.NewSentinelSet(constants.DefaultSentinels)
}

func TestReadTable_CSVWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(" Surname ,ID,cell\nכהן,270,0501234567\n,,\nלוי,364\n")...)

	table, err := ReadTable("residents.CSV", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Surname", "ID", "cell"}, table.Headers)
	require.Len(t, table.Rows, 2, "blank rows are dropped")
	assert.Equal(t, []string{"לוי", "364", ""}, table.Rows[1], "short rows are padded")
}

func TestReadTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"order_code", "guest_list", "rating"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"1", "2|3|4", "2"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ReadTable("orders.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"order_code", "guest_list", "rating"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2|3|4", table.Rows[0][1])
}

func TestReadTable_Errors(t *testing.T) {
	_, err := ReadTable("notes.txt", []byte("a,b"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = ReadTable("empty.csv", nil)
	assert.True(t, errors.Is(err, ErrEmptyFile))

	_, err = ReadTable("broken.xlsx", []byte("not a zip"))
	assert.Error(t, err)
}

func TestParseResidents_AliasesAndSentinels(t *testing.T) {
	table, err := ReadTable("residents.csv", []byte(
		"Family_Name,first_name,Street,house_number,flat_number,cell,mail,id,rating,notes\n"+
			"כהן,משה,הרצל,12,ללא דירה,050-1234567,NONE,270,2,ignored\n"))
	require.NoError(t, err)

	upload, err := ParseResidents(table, sentinels())
	require.NoError(t, err)
	require.Len(t, upload.Rows, 1)

	row := upload.Rows[0]
	assert.Equal(t, "כהן", *row.LastName)
	assert.Equal(t, "משה", *row.FatherName)
	assert.Equal(t, "הרצל", *row.StreetName)
	assert.Equal(t, "12", *row.BuildingNumber)
	assert.Nil(t, row.ApartmentNumber)
	assert.Equal(t, "050-1234567", *row.Mobile)
	assert.Nil(t, row.Email)
	assert.Equal(t, "270", *row.Code)
	assert.Equal(t, "2", *row.StandingOrder)
	assert.Nil(t, row.Phone, "absent column")

	assert.Contains(t, upload.ColumnMappings, ColumnMapping{Original: "Family_Name", Canonical: ColumnLastName})
	assert.Contains(t, upload.ColumnMappings, ColumnMapping{Original: "id", Canonical: ColumnCode})
	for _, m := range upload.ColumnMappings {
		assert.NotEqual(t, "notes", m.Original)
	}
}

func TestParseResidents_RequiresCodeOrLastName(t *testing.T) {
	table, err := ReadTable("residents.csv", []byte("street,phone\nהרצל,025551234\n"))
	require.NoError(t, err)

	_, err = ParseResidents(table, sentinels())
	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.True(t, missing.AnyOf)
	assert.Equal(t, []string{ColumnCode, ColumnLastName}, missing.Missing)

	table, err = ReadTable("residents.csv", []byte("lastname\nכהן\n"))
	require.NoError(t, err)
	_, err = ParseResidents(table, sentinels())
	assert.NoError(t, err)
}

func TestParseOrders(t *testing.T) {
	table, err := ReadTable("orders.csv", []byte(
		"ORDER_CODE, guest_list ,rating,total_amount\n1,2|3|4,3.0,120\nabc,5,x,\n"))
	require.NoError(t, err)

	upload, err := ParseOrders(table, sentinels())
	require.NoError(t, err)
	require.Len(t, upload.Rows, 2)

	first := upload.Rows[0]
	assert.Equal(t, 1, first.RowNumber)
	assert.Equal(t, "1", *first.OrderCode)
	assert.Equal(t, []string{"2", "3", "4"}, first.GuestCodes())
	require.NotNil(t, first.Rating)
	assert.Equal(t, 3, *first.Rating)
	assert.Equal(t, "120", *first.TotalAmount)

	second := upload.Rows[1]
	assert.Equal(t, 2, second.RowNumber)
	assert.Nil(t, second.Rating)
	assert.Nil(t, second.TotalAmount)
}

func TestParseOrders_MissingColumns(t *testing.T) {
	table, err := ReadTable("orders.csv", []byte("order_code,rating\n1,2\n"))
	require.NoError(t, err)

	_, err = ParseOrders(table, sentinels())
	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.False(t, missing.AnyOf)
	assert.Equal(t, []string{ColumnGuestList}, missing.Missing)
	assert.True(t, strings.Contains(err.Error(), ColumnGuestList))
}
