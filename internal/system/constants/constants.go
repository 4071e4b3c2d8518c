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

package constants

const ApiBasePath = "/api/v1"
const ResidentsApiPath = "/residents"
const OrdersApiPath = "/orders"

type contextKey string

const TraceIDContextKey contextKey = "trace_id"

// Supported database types. The value doubles as the key into the query maps in scripts.
const (
	PostgresDBType = "postgres"
	SQLiteDBType   = "sqlite"
)

// Upload lock keys. One upload of each kind may run at a time.
const (
	ResidentUploadLockKey = "resident-upload"
	OrderUploadLockKey    = "order-upload"
	OuterOrderLockKey     = "outer-order-upload"
)

// Upload form and defaults.
const (
	UploadFormField          = "file"
	DefaultMaxUploadBytes    = 16 << 20
	DefaultPreviewCap        = 5
	DefaultAreaCode          = "02"
	DefaultPhoneRegion       = "IL"
	DefaultImportStatsTTLMin = 60
)

var DefaultAllowedExtensions = []string{"csv", "xlsx"}

// DefaultSentinels are the "no value" tokens seen in resident exports.
var DefaultSentinels = []string{"", "none", "nan", "null", "אין", "אין דירה", "ללא", "ללא דירה"}

// Invalid sender handling for order imports.
const (
	InvalidSenderDrop  = "drop"
	InvalidSenderCount = "count"
)

const (
	OrderOriginCSVImport    = "csv_import"
	OuterOrderOrigin        = "external_app"
	OuterOrderStatusWaiting = "waiting"
)

// DefaultPackageSizes maps an order rating to the package size label used by distribution.
var DefaultPackageSizes = map[int]string{
	1: "סמלי",
	2: "מכובד",
	3: "מפואר",
}

const (
	ResidentUploadResource = "resident-upload"
	OrderImportResource    = "order-import"
	OuterOrderResource     = "outer-orders"
)
