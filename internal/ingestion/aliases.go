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

package ingestion

import "strings"

// Canonical resident columns.
const (
	ColumnCode            = "code"
	ColumnLastName        = "lastname"
	ColumnFatherName      = "father_name"
	ColumnMotherName      = "mother_name"
	ColumnStreetName      = "streetname"
	ColumnBuildingNumber  = "buildingnumber"
	ColumnEntrance        = "entrance"
	ColumnApartmentNumber = "apartmentnumber"
	ColumnPhone           = "phone"
	ColumnMobile          = "mobile"
	ColumnMobile2         = "mobile2"
	ColumnEmail           = "email"
	ColumnStandingOrder   = "standing_order"
)

// Canonical order columns.
const (
	ColumnOrderCode     = "order_code"
	ColumnGuestList     = "guest_list"
	ColumnCreatedAt     = "created_at"
	ColumnRating        = "rating"
	ColumnTotalAmount   = "total_amount"
	ColumnPaymentMethod = "payment_method"
)

// ResidentAliases maps lower-cased upload headers to canonical resident columns.
var ResidentAliases = map[string]string{
	"last_name":   ColumnLastName,
	"lastname":    ColumnLastName,
	"family_name": ColumnLastName,
	"surname":     ColumnLastName,

	"father_first_name": ColumnFatherName,
	"father_name":       ColumnFatherName,
	"first_name":        ColumnFatherName,
	"firstname":         ColumnFatherName,

	"mother_first_name": ColumnMotherName,
	"mother_name":       ColumnMotherName,

	"street":      ColumnStreetName,
	"streetname":  ColumnStreetName,
	"street_name": ColumnStreetName,

	"building_number": ColumnBuildingNumber,
	"buildingnumber":  ColumnBuildingNumber,
	"house_number":    ColumnBuildingNumber,
	"housenumber":     ColumnBuildingNumber,

	"entrance": ColumnEntrance,

	"apartment_number": ColumnApartmentNumber,
	"apartmentnumber":  ColumnApartmentNumber,
	"apartment":        ColumnApartmentNumber,
	"flat_number":      ColumnApartmentNumber,

	"phone":      ColumnPhone,
	"home_phone": ColumnPhone,
	"homephone":  ColumnPhone,
	"telephone":  ColumnPhone,

	"mobile":    ColumnMobile,
	"mobile1":   ColumnMobile,
	"cell":      ColumnMobile,
	"cellphone": ColumnMobile,

	"mobile2": ColumnMobile2,

	"email": ColumnEmail,
	"mail":  ColumnEmail,

	"code": ColumnCode,
	"id":   ColumnCode,

	"standing_order": ColumnStandingOrder,
	"rating":         ColumnStandingOrder,
}

// OrderAliases maps lower-cased upload headers to canonical order columns.
var OrderAliases = map[string]string{
	"order_code":     ColumnOrderCode,
	"sender_code":    ColumnOrderCode,
	"guest_list":     ColumnGuestList,
	"invitees":       ColumnGuestList,
	"created_at":     ColumnCreatedAt,
	"rating":         ColumnRating,
	"total_amount":   ColumnTotalAmount,
	"payment_method": ColumnPaymentMethod,
}

// ColumnMapping records one header rename.
type ColumnMapping struct {
	Original  string `json:"original"`
	Canonical string `json:"canonical"`
}

// columnIndex maps canonical names to their position in the table. When two headers map
// to the same canonical column the first one wins.
type columnIndex map[string]int

func (c columnIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}

// cell returns the raw cell for the column, nil when the column is absent.
func (c columnIndex) cell(row []string, name string) *string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return nil
	}
	value := row[idx]
	return &value
}

// canonicalize rewrites headers through aliases. Unknown headers keep their text.
func canonicalize(headers []string, aliases map[string]string) (columnIndex, []ColumnMapping) {

	index := columnIndex{}
	mappings := []ColumnMapping{}
	for i, header := range headers {
		name := header
		if canonical, ok := aliases[strings.ToLower(header)]; ok {
			name = canonical
		}
		if name != header {
			mappings = append(mappings, ColumnMapping{Original: header, Canonical: name})
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index, mappings
}
