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
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// HandleUploadError interprets multipart upload errors and returns user-friendly messages.
func HandleUploadError(err error, resourceName string, limit int64) string {
	if err == nil {
		return ""
	}

	if isMissingFile(err) {
		return fmt.Sprintf("The %s request must carry a '%s' form field.", resourceName, "file")
	}

	if isTooLarge(err) {
		return fmt.Sprintf("The %s file exceeds the %d byte limit.", resourceName, limit)
	}

	// Empty body
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Sprintf("Request body for %s is empty or truncated.", resourceName)
	}

	if errors.Is(err, http.ErrNotMultipart) {
		return fmt.Sprintf("The %s request must be multipart/form-data.", resourceName)
	}

	// Generic fallback
	return fmt.Sprintf("Invalid upload payload for %s.", resourceName)
}

func isMissingFile(err error) bool {
	return errors.Is(err, http.ErrMissingFile)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
