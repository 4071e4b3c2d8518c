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

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// GuestListDelimiter separates receiver codes in a guest list cell.
const GuestListDelimiter = "|"

// OrderRow is one uploaded order line after header aliasing.
type OrderRow struct {
	RowNumber     int     `json:"row_number"`
	OrderCode     *string `json:"order_code"`
	GuestList     *string `json:"guest_list"`
	Rating        *int    `json:"rating,omitempty"`
	CreatedAt     *string `json:"created_at,omitempty"`
	TotalAmount   *string `json:"total_amount,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

// GuestCodes splits the guest list on the delimiter and drops empty tokens.
func (o OrderRow) GuestCodes() []string {
	if o.GuestList == nil {
		return nil
	}
	var codes []string
	for _, token := range strings.Split(*o.GuestList, GuestListDelimiter) {
		if token = strings.TrimSpace(token); token != "" {
			codes = append(codes, token)
		}
	}
	return codes
}

// DeliveryPair is a sender to receiver delivery obligation.
type DeliveryPair struct {
	OrderID          int64     `json:"order_id"`
	DeliverySenderID int64     `json:"delivery_sender_id"`
	DeliveryGetterID int64     `json:"delivery_getter_id"`
	OrderDate        time.Time `json:"order_date"`
	OriginType       string    `json:"origin_type"`
}

// ImportStatistics summarizes one order resolution run.
type ImportStatistics struct {
	ImportID         string   `json:"import_id"`
	TotalOrders      int      `json:"total_orders"`
	TotalPairs       int      `json:"total_pairs"`
	SuccessfulPairs  int      `json:"successful_pairs"`
	FailedPairs      int      `json:"failed_pairs"`
	MissingSenders   []int64  `json:"missing_senders"`
	MissingReceivers []int64  `json:"missing_receivers"`
	InvalidSenders   []string `json:"invalid_senders,omitempty"`

	missingSenders   map[int64]struct{}
	missingReceivers map[int64]struct{}
}

// NewImportStatistics returns empty statistics for importID.
func NewImportStatistics(importID string) *ImportStatistics {
	return &ImportStatistics{
		ImportID:         importID,
		MissingSenders:   []int64{},
		MissingReceivers: []int64{},
		missingSenders:   map[int64]struct{}{},
		missingReceivers: map[int64]struct{}{},
	}
}

// AddMissingSender records code once, keeping the list sorted.
func (s *ImportStatistics) AddMissingSender(code int64) {
	s.MissingSenders = addDistinct(s.missingSenders, s.MissingSenders, code)
}

// AddMissingReceiver records code once, keeping the list sorted.
func (s *ImportStatistics) AddMissingReceiver(code int64) {
	s.MissingReceivers = addDistinct(s.missingReceivers, s.MissingReceivers, code)
}

func addDistinct(seen map[int64]struct{}, list []int64, code int64) []int64 {
	if _, ok := seen[code]; ok {
		return list
	}
	seen[code] = struct{}{}
	idx := sort.Search(len(list), func(i int) bool { return list[i] >= code })
	list = append(list, 0)
	copy(list[idx+1:], list[idx:])
	list[idx] = code
	return list
}

// StatisticsPreview is the display form of the missing code lists.
type StatisticsPreview struct {
	MissingSenders   string `json:"missing_senders"`
	MissingReceivers string `json:"missing_receivers"`
}

// Preview renders both missing lists capped at limit codes.
func (s *ImportStatistics) Preview(limit int) StatisticsPreview {
	return StatisticsPreview{
		MissingSenders:   PreviewCodes(s.MissingSenders, limit),
		MissingReceivers: PreviewCodes(s.MissingReceivers, limit),
	}
}

// PreviewCodes renders "270, 364, ... and 3 more" style samples. Lists within limit are
// rendered in full.
func PreviewCodes(codes []int64, limit int) string {
	if len(codes) == 0 {
		return ""
	}
	if limit <= 0 || limit > len(codes) {
		limit = len(codes)
	}
	parts := make([]string, 0, limit)
	for _, code := range codes[:limit] {
		parts = append(parts, strconv.FormatInt(code, 10))
	}
	preview := strings.Join(parts, ", ")
	if rest := len(codes) - limit; rest > 0 {
		preview = fmt.Sprintf("%s, ... and %d more", preview, rest)
	}
	return preview
}
