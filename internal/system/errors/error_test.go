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

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerError_WrapsCause(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := NewServerErrorWithTraceID(RESOLVE_ORDERS.WithDescription("Order import failed."), cause, "trace-1")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "trace-1", err.TraceID)
	assert.Equal(t, "Order import failed.", err.Description)
	assert.Contains(t, err.Error(), RESOLVE_ORDERS.Code)
	assert.Contains(t, err.Error(), "deadlock detected")
	assert.Empty(t, RESOLVE_ORDERS.Description, "WithDescription must not mutate the table entry")
}

func TestClientError_Message(t *testing.T) {
	bare := NewClientError(MISSING_REQUIRED_COLUMNS, http.StatusBadRequest)
	assert.Empty(t, MISSING_REQUIRED_COLUMNS.Description)
	assert.Equal(t, fmt.Sprintf("[%s] %s", MISSING_REQUIRED_COLUMNS.Code, MISSING_REQUIRED_COLUMNS.Message), bare.Error())

	err := NewClientError(UPLOAD_IN_PROGRESS, http.StatusConflict)
	assert.Equal(t, http.StatusConflict, err.StatusCode)
	assert.Equal(t, fmt.Sprintf("[%s] %s: %s", UPLOAD_IN_PROGRESS.Code, UPLOAD_IN_PROGRESS.Message,
		UPLOAD_IN_PROGRESS.Description), err.Error())

	described := NewClientError(MISSING_REQUIRED_COLUMNS.WithDescription("order_code"), http.StatusBadRequest)
	assert.Contains(t, described.Error(), ": order_code")
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("queue step: %w", NewServerError(DISTRIBUTION_UNSUPPORTED, nil))

	assert.True(t, HasCode(wrapped, DISTRIBUTION_UNSUPPORTED))
	assert.False(t, HasCode(wrapped, DISTRIBUTE_ORDERS))
	assert.False(t, HasCode(nil, DISTRIBUTION_UNSUPPORTED))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, IMPORT_NOT_FOUND.Code, CodeOf(NewClientError(IMPORT_NOT_FOUND, http.StatusNotFound)))
}
