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
package managers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/testdb"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	testdb.NewSQLite(t)
	mux := http.NewServeMux()
	require.NoError(t, NewServiceManager(mux).RegisterServices(constants.ApiBasePath))
	server := httptest.NewServer(utils.WithTrace(mux))
	t.Cleanup(server.Close)
	return server
}

func upload(t *testing.T, url, fileName, content string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(constants.UploadFormField, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(url, writer.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthRoutes(t *testing.T) {
	server := newServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(utils.TraceIDHeader))

	ready, err := http.Get(server.URL + "/ready")
	require.NoError(t, err)
	defer ready.Body.Close()
	assert.Equal(t, http.StatusOK, ready.StatusCode)
	report := decode(t, ready)
	assert.Equal(t, "ready", report["status"])
	assert.Equal(t, constants.SQLiteDBType, report["database"])

	req, err := http.NewRequest(http.MethodPost, server.URL+"/health", nil)
	require.NoError(t, err)
	rejected, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer rejected.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, rejected.StatusCode)
	assert.Equal(t, "GET, HEAD", rejected.Header.Get("Allow"))
}

func TestResidentsAndOrdersFlow(t *testing.T) {
	server := newServer(t)
	base := server.URL + constants.ApiBasePath

	residents := "code,lastname,father_name,streetname,buildingnumber,apartmentnumber\n" +
		"270,כהן,משה,הרצל,12,3\n" +
		"364,לוי,דוד,ביאליק,4,1\n"
	resp := upload(t, base+"/residents/upload", "residents.csv", residents)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode(t, resp)
	assert.EqualValues(t, 2, summary["registry_total"])

	resp = upload(t, base+"/orders/import", "orders.csv", "order_code,guest_list\n270,364|999\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	stats := result["statistics"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["successful_pairs"])
	assert.EqualValues(t, 1, stats["failed_pairs"])

	cached, err := http.Get(base + "/orders/imports/" + stats["import_id"].(string))
	require.NoError(t, err)
	defer cached.Body.Close()
	assert.Equal(t, http.StatusOK, cached.StatusCode)

	debug, err := http.Get(base + "/residents/debug")
	require.NoError(t, err)
	defer debug.Body.Close()
	assert.Equal(t, http.StatusOK, debug.StatusCode)
}

func TestUploadRejections(t *testing.T) {
	server := newServer(t)
	base := server.URL + constants.ApiBasePath

	resp := upload(t, base+"/residents/upload", "residents.pdf", "code\n1\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors2.UNSUPPORTED_FILE_TYPE.Code, decode(t, resp)["code"])

	missing, err := http.Post(base+"/orders/import", "text/plain", bytes.NewBufferString("x"))
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)

	unknown, err := http.Get(base + "/orders/imports/does-not-exist")
	require.NoError(t, err)
	defer unknown.Body.Close()
	assert.Equal(t, http.StatusNotFound, unknown.StatusCode)

	notFound, err := http.Get(base + "/profiles")
	require.NoError(t, err)
	defer notFound.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
}
