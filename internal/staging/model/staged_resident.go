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

// Status is the reconciliation outcome recorded on a staged row.
type Status string

const (
	StatusUnresolved   Status = "unresolved"
	StatusInserted     Status = "inserted"
	StatusMerged       Status = "merged"
	StatusSkipped      Status = "skipped"
	StatusPartialMatch Status = "partial_match"
)

// TerminalStatuses lists the outcomes a reconciled row can end in, in display order.
var TerminalStatuses = []Status{StatusInserted, StatusMerged, StatusSkipped, StatusPartialMatch}

// ResidentFields are the canonical resident columns shared by raw rows, staged rows and
// registry records. A nil field is an absent value.
type ResidentFields struct {
	Code            *string `json:"code"`
	LastName        *string `json:"lastname"`
	FatherName      *string `json:"father_name"`
	MotherName      *string `json:"mother_name"`
	StreetName      *string `json:"streetname"`
	BuildingNumber  *string `json:"buildingnumber"`
	Entrance        *string `json:"entrance"`
	ApartmentNumber *string `json:"apartmentnumber"`
	Phone           *string `json:"phone"`
	Mobile          *string `json:"mobile"`
	Mobile2         *string `json:"mobile2"`
	Email           *string `json:"email"`
}

// SecondaryKey returns the (lastname, father_name, streetname, buildingnumber,
// apartmentnumber) tuple and whether every component is present.
func (f ResidentFields) SecondaryKey() ([5]string, bool) {
	var key [5]string
	parts := []*string{f.LastName, f.FatherName, f.StreetName, f.BuildingNumber, f.ApartmentNumber}
	for i, part := range parts {
		if part == nil || *part == "" {
			return key, false
		}
		key[i] = *part
	}
	return key, true
}

// RawResident is one uploaded row exactly as read, after header aliasing.
type RawResident struct {
	ID int64 `json:"id"`
	ResidentFields
	StandingOrder *string `json:"standing_order"`
}

// StagedResident is a raw row after sentinel resolution, carrying its reconciliation status.
type StagedResident struct {
	ID    int64 `json:"id"`
	RawID int64 `json:"raw_id"`
	ResidentFields
	StandingOrder int      `json:"standing_order"`
	Status        Status   `json:"status"`
	EmailValid    bool     `json:"email_valid"`
	PhoneFlags    []string `json:"phone_flags,omitempty"`
	Note          *string  `json:"note,omitempty"`
}

// Outcome is what reconciliation writes back onto a staged row.
type Outcome struct {
	Status     Status
	EmailValid bool
	PhoneFlags []string
	Note       string
}

// StatusCounts holds the number of staged rows per status.
type StatusCounts map[Status]int

// Get returns the count for status, zero when absent.
func (c StatusCounts) Get(status Status) int {
	return c[status]
}

// Snapshot is the staging half of the upload debug view.
type Snapshot struct {
	RawCount      int              `json:"raw_count"`
	RawSample     *RawResident     `json:"raw_sample,omitempty"`
	StagedCount   int              `json:"staged_count"`
	StagedCounts  StatusCounts     `json:"staged_counts"`
	SkippedSample []StagedResident `json:"skipped_sample"`
}
