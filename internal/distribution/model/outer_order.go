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
package model

import "time"

// OuterOrder is an order queued for the external distribution function.
type OuterOrder struct {
	ID          int64     `json:"id"`
	SenderCode  string    `json:"sender_code"`
	Invitees    string    `json:"invitees"`
	PackageSize string    `json:"package_size"`
	Origin      string    `json:"origin"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ErrorGroup counts distribution log entries sharing a severity and reason.
type ErrorGroup struct {
	Severity   string `json:"severity"`
	ReasonCode string `json:"reason_code"`
	Count      int    `json:"count"`
}

// DistributionReport is returned after an outer-order upload.
type DistributionReport struct {
	FileName            string        `json:"file_name"`
	RowsQueued          int           `json:"rows_queued"`
	DistributionSkipped bool          `json:"distribution_skipped"`
	Distributed         int64         `json:"distributed"`
	Statuses            []StatusCount `json:"statuses"`
	Errors              []ErrorGroup  `json:"errors"`
}
