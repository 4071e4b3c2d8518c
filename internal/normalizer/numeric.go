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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var integralCode = regexp.MustCompile(`^([+-]?[0-9]+)(?:\.0+)?$`)

// ParseInt reads an optional integer cell. Absent and unparsable text give def; integral
// floats such as "2.0", which spreadsheets emit for numeric columns, are accepted.
func ParseInt(raw *string, def int) int {
	if raw == nil {
		return def
	}
	value, err := ParseCode(*raw)
	if err != nil || value > math.MaxInt32 || value < math.MinInt32 {
		return def
	}
	return int(value)
}

// ParseCode parses an external code. "270" and "270.0" are both 270. Exponents, hex,
// digit separators and any other fraction are rejected.
func ParseCode(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty code")
	}
	m := integralCode.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("code %q is not an integer", raw)
	}
	i, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("code %q is out of range", raw)
	}
	return i, nil
}
