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

// Package normalizer turns raw spreadsheet cell text into canonical values. Every function
// here is pure and never fails; input it cannot make sense of becomes an absent value.
package normalizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// SentinelSet is the shared table of "no value" tokens. Membership ignores case and
// surrounding whitespace. The empty string is always a member.
type SentinelSet struct {
	tokens map[string]struct{}
}

// NewSentinelSet builds the table from configured tokens.
func NewSentinelSet(tokens []string) SentinelSet {
	set := SentinelSet{tokens: make(map[string]struct{}, len(tokens)+1)}
	set.tokens[""] = struct{}{}
	for _, token := range tokens {
		set.tokens[foldKey(token)] = struct{}{}
	}
	return set
}

// Contains reports whether raw is a sentinel token.
func (s SentinelSet) Contains(raw string) bool {
	_, ok := s.tokens[foldKey(raw)]
	return ok
}

// Len returns the number of distinct tokens.
func (s SentinelSet) Len() int {
	return len(s.tokens)
}

// ResolveSentinel returns nil when raw is a sentinel, the trimmed original otherwise.
func ResolveSentinel(raw string, sentinels SentinelSet) *string {
	if sentinels.Contains(raw) {
		return nil
	}
	cleaned := CleanText(raw)
	return &cleaned
}

// Resolve is ResolveSentinel for an optional cell.
func (s SentinelSet) Resolve(raw *string) *string {
	if raw == nil {
		return nil
	}
	return ResolveSentinel(*raw, s)
}

// CleanText trims whitespace and brings the text to NFC so visually equal Hebrew
// strings compare equal.
func CleanText(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

func foldKey(raw string) string {
	// A Caser keeps state, one per call.
	return cases.Fold().String(CleanText(raw))
}
