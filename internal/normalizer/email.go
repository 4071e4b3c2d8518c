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

package normalizer

import (
	"strings"
	"unicode"
)

// NormalizeEmail removes all whitespace and lower-cases the address. Empty input is nil.
func NormalizeEmail(raw string) *string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, raw)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// IsValidEmail is a structural check: exactly one '@', non-empty local and domain parts,
// a '.' in the domain and no whitespace anywhere. It does not normalize.
func IsValidEmail(candidate string) bool {
	if strings.IndexFunc(candidate, unicode.IsSpace) >= 0 {
		return false
	}
	if strings.Count(candidate, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(candidate, "@")
	if local == "" || domain == "" {
		return false
	}
	return strings.Contains(domain, ".")
}
