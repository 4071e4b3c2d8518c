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

package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The helpers below read values out of the rows returned by DBClient.ExecuteQuery.
// Drivers disagree on the Go type of a column: lib/pq hands back string and int64 for
// text and bigint, go-sqlite3 may hand back []byte, int64 for booleans and either time.Time
// or a string for timestamps. Every helper accepts all of them.

// ColumnString returns the column as a string pointer, nil for SQL NULL.
func ColumnString(row map[string]interface{}, column string) *string {
	value, ok := row[column]
	if !ok || value == nil {
		return nil
	}
	s := coerceToString(value)
	return &s
}

// ColumnInt64 returns the column as an int64. ok is false for NULL and non-numeric values.
func ColumnInt64(row map[string]interface{}, column string) (int64, bool) {
	value, ok := row[column]
	if !ok || value == nil {
		return 0, false
	}
	return coerceToInteger(value)
}

// ColumnInt64Ptr is ColumnInt64 returning nil for absent values.
func ColumnInt64Ptr(row map[string]interface{}, column string) *int64 {
	i, ok := ColumnInt64(row, column)
	if !ok {
		return nil
	}
	return &i
}

// ColumnInt returns the column as an int, zero when absent.
func ColumnInt(row map[string]interface{}, column string) int {
	i, _ := ColumnInt64(row, column)
	return int(i)
}

// ColumnBool returns the column as a bool, false when absent.
func ColumnBool(row map[string]interface{}, column string) bool {
	value, ok := row[column]
	if !ok || value == nil {
		return false
	}
	return coerceToBoolean(value)
}

// ColumnTime returns the column as a time, the zero time when absent or unparsable.
func ColumnTime(row map[string]interface{}, column string) time.Time {
	value, ok := row[column]
	if !ok || value == nil {
		return time.Time{}
	}
	return coerceToDateTime(value)
}

func coerceToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		// Check if it's an integer stored as float
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceToInteger(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
		return 0, false
	case []byte:
		return parseInteger(string(v))
	case string:
		return parseInteger(v)
	default:
		return 0, false
	}
}

func parseInteger(s string) (int64, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

func coerceToBoolean(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case []byte:
		b, _ := strconv.ParseBool(string(v))
		return b
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func coerceToDateTime(value interface{}) time.Time {
	var s string
	switch v := value.(type) {
	case time.Time:
		return v
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
