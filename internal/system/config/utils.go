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

package config

import (
	"os"
	"path"
	"strings"

	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the deployment file under the service home, expands ${ENV} references
// and fills in defaults for anything left empty.
func LoadConfig(serviceHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(serviceHome, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset values with the service defaults.
func (c *Config) ApplyDefaults() {

	if c.Log.LogLevel == "" {
		c.Log.LogLevel = "INFO"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.DataSource.Type == "" {
		c.DataSource.Type = constants.PostgresDBType
	}
	c.DataSource.Type = strings.ToLower(c.DataSource.Type)
	if c.DataSource.SSLMode == "" {
		c.DataSource.SSLMode = "disable"
	}

	// An explicitly empty sentinel list is not meaningful, the empty string is always a sentinel.
	if len(c.Ingestion.Sentinels) == 0 {
		c.Ingestion.Sentinels = append([]string(nil), constants.DefaultSentinels...)
	}
	if c.Ingestion.DefaultAreaCode == "" {
		c.Ingestion.DefaultAreaCode = constants.DefaultAreaCode
	}
	if c.Ingestion.PhoneRegion == "" {
		c.Ingestion.PhoneRegion = constants.DefaultPhoneRegion
	}
	if c.Ingestion.MaxUploadBytes <= 0 {
		c.Ingestion.MaxUploadBytes = constants.DefaultMaxUploadBytes
	}
	if len(c.Ingestion.AllowedExtensions) == 0 {
		c.Ingestion.AllowedExtensions = append([]string(nil), constants.DefaultAllowedExtensions...)
	}
	if c.Ingestion.PreviewCap <= 0 {
		c.Ingestion.PreviewCap = constants.DefaultPreviewCap
	}

	switch c.Orders.InvalidSenderPolicy {
	case constants.InvalidSenderDrop, constants.InvalidSenderCount:
	default:
		c.Orders.InvalidSenderPolicy = constants.InvalidSenderDrop
	}
	if c.Orders.OriginType == "" {
		c.Orders.OriginType = constants.OrderOriginCSVImport
	}
	if c.Orders.StatsTTLMinutes <= 0 {
		c.Orders.StatsTTLMinutes = constants.DefaultImportStatsTTLMin
	}

	if len(c.Distribution.PackageSizes) == 0 {
		c.Distribution.PackageSizes = make(map[int]string, len(constants.DefaultPackageSizes))
		for rating, size := range constants.DefaultPackageSizes {
			c.Distribution.PackageSizes[rating] = size
		}
	}
}

// DefaultConfig returns a configuration holding only defaults. Used by tests and the CLI
// when no deployment file is given.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// IsAllowedExtension reports whether the file name carries one of the configured extensions.
func (c IngestionConfig) IsAllowedExtension(fileName string) bool {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(fileName[idx+1:])
	for _, allowed := range c.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
