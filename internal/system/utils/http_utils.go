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
	"bytes"
	"encoding/json"
	"errors" // Standard Go errors package
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	customerrors "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

// UploadedFile is a tabular file received through a multipart form.
type UploadedFile struct {
	Name string
	Data []byte
}

// Reader returns a fresh reader over the file content.
func (f *UploadedFile) Reader() io.Reader {
	return bytes.NewReader(f.Data)
}

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {
	var clientError *customerrors.ClientError
	w.Header().Set("Content-Type", "application/json")
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description"`
			TraceID     string `json:"trace_id,omitempty"`
		}{
			Code:        clientError.ErrorMessage.Code,
			Message:     clientError.ErrorMessage.Message,
			Description: clientError.ErrorMessage.Description,
			TraceID:     clientError.ErrorMessage.TraceID,
		})
		return
	}

	logger := log.GetLogger()
	logger.Error(err.Error())
	w.WriteHeader(http.StatusInternalServerError)
	response := map[string]string{
		"error": "Internal server error",
	}
	var serverError *customerrors.ServerError
	if errors.As(err, &serverError) {
		response["code"] = serverError.Code
		if serverError.TraceID != "" {
			response["trace_id"] = serverError.TraceID
		}
	}
	_ = json.NewEncoder(w).Encode(response)
}

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// ReadUploadedFile reads the multipart "file" field, enforcing the configured size limit and
// extension whitelist.
func ReadUploadedFile(w http.ResponseWriter, r *http.Request, rules config.IngestionConfig,
	resourceName string) (*UploadedFile, error) {

	r.Body = http.MaxBytesReader(w, r.Body, rules.MaxUploadBytes)
	if err := r.ParseMultipartForm(rules.MaxUploadBytes); err != nil {
		return nil, uploadClientError(err, resourceName, rules.MaxUploadBytes)
	}

	file, header, err := r.FormFile(constants.UploadFormField)
	if err != nil {
		return nil, uploadClientError(err, resourceName, rules.MaxUploadBytes)
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, customerrors.NewClientError(customerrors.FILE_MISSING.WithDescription(
			fmt.Sprintf("No file was selected for the %s.", resourceName)), http.StatusBadRequest)
	}
	if !rules.IsAllowedExtension(header.Filename) {
		return nil, customerrors.NewClientError(customerrors.UNSUPPORTED_FILE_TYPE.WithDescription(
			fmt.Sprintf("File '%s' is not supported. Allowed types: %v.", header.Filename,
				rules.AllowedExtensions)), http.StatusBadRequest)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, uploadClientError(err, resourceName, rules.MaxUploadBytes)
	}
	return &UploadedFile{Name: header.Filename, Data: data}, nil
}

func uploadClientError(err error, resourceName string, limit int64) *customerrors.ClientError {

	description := HandleUploadError(err, resourceName, limit)
	switch {
	case isMissingFile(err):
		return customerrors.NewClientError(customerrors.FILE_MISSING.WithDescription(description),
			http.StatusBadRequest)
	case isTooLarge(err):
		return customerrors.NewClientError(customerrors.FILE_TOO_LARGE.WithDescription(description),
			http.StatusRequestEntityTooLarge)
	default:
		return customerrors.NewClientError(customerrors.BAD_REQUEST.WithDescription(description),
			http.StatusBadRequest)
	}
}

// MountDispatcher routes every request under apiBasePath to handlerFunc with the base path
// stripped from r.URL.Path.
func MountDispatcher(mux *http.ServeMux, apiBasePath string, handlerFunc http.HandlerFunc) {
	mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, apiBasePath)
		if relativePath == "" {
			relativePath = "/"
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = relativePath
		handlerFunc(w, r2)
	})
}
