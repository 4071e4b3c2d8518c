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
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

// readFile loads an upload from disk under the same extension and size rules as the HTTP
// surface.
func readFile(path string) (*utils.UploadedFile, error) {

	rules := config.GetRuntime().Config.Ingestion
	name := filepath.Base(path)
	if !rules.IsAllowedExtension(name) {
		return nil, fmt.Errorf("file %q is not supported, allowed types: %v", name, rules.AllowedExtensions)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > rules.MaxUploadBytes {
		return nil, fmt.Errorf("file %q is %d bytes, the limit is %d", name, info.Size(), rules.MaxUploadBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &utils.UploadedFile{Name: name, Data: data}, nil
}
