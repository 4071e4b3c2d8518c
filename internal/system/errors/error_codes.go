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

package errors

const errorPrefix = "MMS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing the database query.",
	}

	BEGIN_TRANSACTION = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Unable to begin a database transaction.",
	}

	COMMIT_TRANSACTION = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Unable to commit the database transaction.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Upload lock acquisition failed.",
	}

	LOCK_RELEASE = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while releasing the upload lock.",
	}

	LOCK_KEY_GEN = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error generating advisory lock key.",
	}

	STAGE_RESIDENTS = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while staging resident rows.",
	}

	RECONCILE_RESIDENT = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while reconciling a resident row.",
	}

	FETCH_RESIDENT = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching resident records.",
	}

	SAVE_RESIDENT = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while saving a resident record.",
	}

	ARCHIVE_RESIDENT = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while archiving a resident record.",
	}

	RESOLVE_ORDERS = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while resolving order pairs.",
	}

	SAVE_DELIVERY_PAIR = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while saving a delivery pair.",
	}

	QUEUE_OUTER_ORDERS = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while queueing outer orders.",
	}

	DISTRIBUTE_ORDERS = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while distributing outer orders.",
	}

	DISTRIBUTION_UNSUPPORTED = ErrorMessage{
		Code:        errorPrefix + "15017",
		Message:     "Distribution is not available.",
		Description: "The configured database does not provide the distribution function.",
	}

	READ_UPLOAD = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Error while reading the uploaded file.",
	}

	SCHEMA_INIT = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Error while creating the database schema.",
	}

	INVALID_TYPE = ErrorMessage{
		Code:    errorPrefix + "15020",
		Message: "Invalid type.",
	}

	// Client error codes
	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "20001",
		Message: "Invalid request.",
	}

	FILE_MISSING = ErrorMessage{
		Code:        errorPrefix + "20002",
		Message:     "No file selected.",
		Description: "The request must carry the upload in the 'file' form field.",
	}

	UNSUPPORTED_FILE_TYPE = ErrorMessage{
		Code:        errorPrefix + "20003",
		Message:     "Unsupported file type.",
		Description: "Use a CSV or Excel file.",
	}

	FILE_TOO_LARGE = ErrorMessage{
		Code:    errorPrefix + "20004",
		Message: "Uploaded file is too large.",
	}

	MISSING_REQUIRED_COLUMNS = ErrorMessage{
		Code:    errorPrefix + "20005",
		Message: "Required columns are missing.",
	}

	MALFORMED_FILE = ErrorMessage{
		Code:    errorPrefix + "20006",
		Message: "The uploaded file could not be parsed.",
	}

	UPLOAD_IN_PROGRESS = ErrorMessage{
		Code:        errorPrefix + "20007",
		Message:     "Another upload is in progress.",
		Description: "Wait for the running upload to finish and try again.",
	}

	IMPORT_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "20008",
		Message:     "Import not found.",
		Description: "No statistics are held for the given import id.",
	}
)
