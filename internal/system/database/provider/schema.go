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
package provider

import (
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
	errors2 "github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

// InitSchema creates the tables of the configured database when they do not exist yet.
func InitSchema() error {

	dbProvider := NewDBProvider()
	dbClient, err := dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for schema initialization."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.DB_CLIENT_INIT.WithDescription(errorMsg), err)
	}
	dbType := dbProvider.GetDBType()
	if err := dbClient.ExecuteScript(scripts.SchemaDDL[dbType]); err != nil {
		errorMsg := "Failed to initialize the " + dbType + " schema."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.SCHEMA_INIT.WithDescription(errorMsg), err)
	}
	log.GetLogger().Info("Database schema is ready", log.String("db_type", dbType))
	return nil
}
