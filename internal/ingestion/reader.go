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
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrUnsupportedFormat is returned for a file that is neither csv nor xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmptyFile is returned when the upload has no header row.
var ErrEmptyFile = errors.New("file has no header row")

// Table is an uploaded sheet: one trimmed header row and the data rows below it. Data rows
// are padded to the header width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadTable reads a csv or xlsx upload, chosen by the file extension.
func ReadTable(fileName string, data []byte) (*Table, error) {

	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "csv":
		return readCSV(data)
	case "xlsx":
		return readXLSX(data)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "file %q", fileName)
	}
}

func readCSV(data []byte) (*Table, error) {

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse csv")
	}
	return newTable(records)
}

func readXLSX(data []byte) (*Table, error) {

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open spreadsheet")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}
	return newTable(rows)
}

func newTable(records [][]string) (*Table, error) {

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Headers: headers}
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		row := make([]string, len(headers))
		copy(row, record)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ReadAll is a convenience for callers holding a reader rather than bytes.
func ReadAll(fileName string, r io.Reader) (*Table, error) {

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	return ReadTable(fileName, data)
}
