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

// Attributes are the mutable resident fields a merge may overwrite.
type Attributes struct {
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
	StandingOrder   int     `json:"standing_order"`
}

// Diff returns the names of the fields whose value differs between a and other.
func (a Attributes) Diff(other Attributes) []string {
	var changed []string
	pairs := []struct {
		name        string
		left, right *string
	}{
		{"lastname", a.LastName, other.LastName},
		{"father_name", a.FatherName, other.FatherName},
		{"mother_name", a.MotherName, other.MotherName},
		{"streetname", a.StreetName, other.StreetName},
		{"buildingnumber", a.BuildingNumber, other.BuildingNumber},
		{"entrance", a.Entrance, other.Entrance},
		{"apartmentnumber", a.ApartmentNumber, other.ApartmentNumber},
		{"phone", a.Phone, other.Phone},
		{"mobile", a.Mobile, other.Mobile},
		{"mobile2", a.Mobile2, other.Mobile2},
		{"email", a.Email, other.Email},
	}
	for _, p := range pairs {
		if !equalOptional(p.left, p.right) {
			changed = append(changed, p.name)
		}
	}
	if a.StandingOrder != other.StandingOrder {
		changed = append(changed, "standing_order")
	}
	return changed
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Person is a registry record.
type Person struct {
	PersonID int64  `json:"personid"`
	Code     *int64 `json:"code"`
	Attributes
	AutoReturn bool      `json:"auto_return"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ArchiveEntry is the state of a person right before a merge overwrote it.
type ArchiveEntry struct {
	ArchiveID int64  `json:"archive_id"`
	PersonID  int64  `json:"personid"`
	Code      *int64 `json:"code"`
	Attributes
	ArchivedAt time.Time `json:"archived_at"`
}
