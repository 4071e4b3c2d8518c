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
	"strconv"
	"strings"

	"github.com/ttacon/libphonenumber"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
)

const (
	countryCode         = "972"
	internationalPrefix = "00"
	localNumberDigits   = 7
	minPhoneDigits      = 7
	israeliMobileDigits = 9
)

// PhoneFlagNotDialable marks a canonical phone that libphonenumber does not accept as a
// valid number for the region. The value is kept.
const PhoneFlagNotDialable = "not_dialable"

// NormalizePhone normalizes with the default area code.
func NormalizePhone(raw string) *string {
	return NormalizePhoneWithAreaCode(raw, constants.DefaultAreaCode)
}

// NormalizePhoneWithAreaCode strips everything but digits, rewrites a 972 country prefix
// to the national leading zero, prefixes areaCode to a 7 digit local number and adds the
// missing leading zero to 8 and 9 digit numbers. Fewer than 7 digits is not a phone number.
func NormalizePhoneWithAreaCode(raw, areaCode string) *string {
	digits := digitsOnly(raw)

	if strings.HasPrefix(digits, internationalPrefix+countryCode) {
		digits = digits[len(internationalPrefix):]
	}
	if strings.HasPrefix(digits, countryCode) && len(digits) >= len(countryCode)+8 {
		digits = "0" + strings.TrimLeft(digits[len(countryCode):], "0")
	}

	if len(digits) < minPhoneDigits {
		return nil
	}

	switch {
	case len(digits) == localNumberDigits:
		digits = areaCode + digits
	case (len(digits) == 8 || len(digits) == 9) && digits[0] != '0':
		digits = "0" + digits
	}
	return &digits
}

// IsDialablePhone reports whether a canonical national number is a valid number in region.
// Israeli mobiles (05x, nine significant digits) that the metadata does not classify are
// accepted: the bundled tables predate several 050 and 052 allocations.
func IsDialablePhone(canonical, region string) bool {
	if canonical == "" {
		return false
	}
	number, err := libphonenumber.Parse(canonical, region)
	if err != nil {
		return false
	}
	if libphonenumber.IsValidNumber(number) {
		return true
	}
	return region == constants.DefaultPhoneRegion &&
		libphonenumber.GetNumberType(number) == libphonenumber.UNKNOWN &&
		isIsraeliMobile(number.GetNationalNumber())
}

func isIsraeliMobile(nationalNumber uint64) bool {
	nsn := strconv.FormatUint(nationalNumber, 10)
	return len(nsn) == israeliMobileDigits && nsn[0] == '5'
}

func digitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
