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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnString(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected *string
	}{
		{"string", "hello", strPtr("hello")},
		{"bytes", []byte("שלום"), strPtr("שלום")},
		{"int64", int64(42), strPtr("42")},
		{"integral float", 42.0, strPtr("42")},
		{"decimal float", 42.5, strPtr("42.5")},
		{"null", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := map[string]interface{}{"col": tt.input}
			assert.Equal(t, tt.expected, ColumnString(row, "col"))
		})
	}
}

func TestColumnString_MissingColumn(t *testing.T) {
	assert.Nil(t, ColumnString(map[string]interface{}{}, "col"))
}

func TestColumnInt64(t *testing.T) {
	tests := []struct {
		name       string
		input      interface{}
		expected   int64
		expectedOk bool
	}{
		{"int64", int64(7), 7, true},
		{"integral float", 7.0, 7, true},
		{"string", " 270 ", 270, true},
		{"bytes", []byte("364"), 364, true},
		{"decimal float", 7.5, 0, false},
		{"text", "abc", 0, false},
		{"null", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := map[string]interface{}{"col": tt.input}
			got, ok := ColumnInt64(row, "col")
			assert.Equal(t, tt.expectedOk, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestColumnInt64Ptr(t *testing.T) {
	assert.Nil(t, ColumnInt64Ptr(map[string]interface{}{"col": nil}, "col"))
	got := ColumnInt64Ptr(map[string]interface{}{"col": int64(9)}, "col")
	require.NotNil(t, got)
	assert.Equal(t, int64(9), *got)
}

func TestColumnBool(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected bool
	}{
		{"bool", true, true},
		{"sqlite integer true", int64(1), true},
		{"sqlite integer false", int64(0), false},
		{"string", "true", true},
		{"null", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := map[string]interface{}{"col": tt.input}
			assert.Equal(t, tt.expected, ColumnBool(row, "col"))
		})
	}
}

func TestColumnTime(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	assert.True(t, ts.Equal(ColumnTime(map[string]interface{}{"col": ts}, "col")))
	assert.True(t, ts.Equal(ColumnTime(map[string]interface{}{"col": "2025-03-14 09:30:00"}, "col")))
	assert.True(t, ts.Equal(ColumnTime(map[string]interface{}{"col": []byte("2025-03-14T09:30:00Z")}, "col")))
	assert.True(t, ColumnTime(map[string]interface{}{"col": "not a time"}, "col").IsZero())
	assert.True(t, ColumnTime(map[string]interface{}{}, "col").IsZero())
}

func strPtr(s string) *string {
	return &s
}
