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

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
}

// DataSourceConfig describes the registry database. Type is either "postgres" or "sqlite";
// Path is only read for sqlite.
type DataSourceConfig struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type IngestionConfig struct {
	Sentinels         []string `yaml:"sentinels"`
	DefaultAreaCode   string   `yaml:"default_area_code"`
	PhoneRegion       string   `yaml:"phone_region"`
	MaxUploadBytes    int64    `yaml:"max_upload_bytes"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
	PreviewCap        int      `yaml:"preview_cap"`
}

type OrdersConfig struct {
	InvalidSenderPolicy string `yaml:"invalid_sender_policy"`
	OriginType          string `yaml:"origin_type"`
	StatsTTLMinutes     int    `yaml:"stats_ttl_minutes"`
}

type DistributionConfig struct {
	Enabled      bool           `yaml:"enabled"`
	PackageSizes map[int]string `yaml:"package_sizes"`
}

type Config struct {
	Addr         AddrConfig         `yaml:"addr"`
	Log          LogConfig          `yaml:"log"`
	DataSource   DataSourceConfig   `yaml:"datasource"`
	Ingestion    IngestionConfig    `yaml:"ingestion"`
	Orders       OrdersConfig       `yaml:"orders"`
	Distribution DistributionConfig `yaml:"distribution"`
}
