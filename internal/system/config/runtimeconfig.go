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
	"fmt"
	"sync"

	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
)

// Runtime is the configuration the process runs with, together with the service home the
// deployment file was read from.
type Runtime struct {
	ServiceHome string `yaml:"service_home"`
	Config      Config `yaml:"config"`
}

var (
	runtimeConfig *Runtime
	runtimeMu     sync.RWMutex
)

// InitializeRuntime installs the configuration once. A second call is rejected so a
// running server never swaps its datasource.
func InitializeRuntime(serviceHome string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("no configuration given for %s", serviceHome)
	}
	if err := validateDataSource(cfg.DataSource); err != nil {
		return err
	}

	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	if runtimeConfig != nil {
		return fmt.Errorf("runtime is already initialized from %s", runtimeConfig.ServiceHome)
	}
	runtimeConfig = &Runtime{ServiceHome: serviceHome, Config: *cfg}
	return nil
}

// OverrideRuntime replaces the configuration and keeps the service home. Used by tests and
// the CLI, which build their configuration from flags.
func OverrideRuntime(conf Config) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()

	home := ""
	if runtimeConfig != nil {
		home = runtimeConfig.ServiceHome
	}
	runtimeConfig = &Runtime{ServiceHome: home, Config: conf}
}

// GetRuntime returns the installed configuration and panics when none is installed.
func GetRuntime() *Runtime {
	runtimeMu.RLock()
	defer runtimeMu.RUnlock()

	if runtimeConfig == nil {
		panic("runtime configuration is not initialized")
	}
	return runtimeConfig
}

func validateDataSource(ds DataSourceConfig) error {
	switch ds.Type {
	case constants.PostgresDBType, constants.SQLiteDBType:
		return nil
	default:
		return fmt.Errorf("unsupported datasource type %q", ds.Type)
	}
}
