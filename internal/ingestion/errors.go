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
	"net/http"

	"github.com/pkg/errors"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
)

// ToClientError turns a read or parse failure into the client error reported for the upload.
// Every ingestion failure is the caller's file, so nothing here is a server error.
func ToClientError(err error, fileName, traceID string) *errors2.ClientError {

	var missing *MissingColumnsError
	switch {
	case errors.As(err, &missing):
		return errors2.NewClientErrorWithTraceID(errors2.MISSING_REQUIRED_COLUMNS.WithDescription(
			fmt.Sprintf("File '%s': %s.", fileName, missing.Error())), http.StatusBadRequest, traceID)
	case errors.Is(err, ErrUnsupportedFormat):
		return errors2.NewClientErrorWithTraceID(errors2.UNSUPPORTED_FILE_TYPE, http.StatusBadRequest, traceID)
	default:
		return errors2.NewClientErrorWithTraceID(errors2.MALFORMED_FILE.WithDescription(
			fmt.Sprintf("File '%s' could not be read: %v.", fileName, errors.Cause(err))), http.StatusBadRequest, traceID)
	}
}
