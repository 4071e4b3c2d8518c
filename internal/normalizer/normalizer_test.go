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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *string
	}{
		{"international mobile", "972501234567", ptr("0501234567")},
		{"international with plus and dashes", "+972-50-123-4567", ptr("0501234567")},
		{"international with 00 prefix", "00972501234567", ptr("0501234567")},
		{"international landline", "97225551234", ptr("025551234")},
		{"local number gets area code", "5551234", ptr("025551234")},
		{"local number with separators", "555-1234", ptr("025551234")},
		{"mobile missing leading zero", "501234567", ptr("0501234567")},
		{"landline missing leading zero", "25551234", ptr("025551234")},
		{"already canonical mobile", "050-123 4567", ptr("0501234567")},
		{"ten digits without leading zero untouched", "1234567890", ptr("1234567890")},
		{"empty", "", nil},
		{"letters only", "none", nil},
		{"too short", "12345", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"972501234567", "5551234", "501234567", "0501234567", "025551234",
		"+972 2 555 1234", "0000972501234567", "972123456", "1234567890123"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := NormalizePhone(input)
			require.NotNil(t, once)
			twice := NormalizePhone(*once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalizePhoneWithAreaCode(t *testing.T) {
	assert.Equal(t, ptr("035551234"), NormalizePhoneWithAreaCode("5551234", "03"))
}

func TestIsDialablePhone(t *testing.T) {
	for _, mobile := range []string{"0501234567", "0521234567", "0541234567", "0531234567", "0581234567"} {
		assert.True(t, IsDialablePhone(mobile, constants.DefaultPhoneRegion), mobile)
	}
	assert.True(t, IsDialablePhone("025551234", constants.DefaultPhoneRegion))
	assert.False(t, IsDialablePhone("0000000", constants.DefaultPhoneRegion))
	assert.False(t, IsDialablePhone("", constants.DefaultPhoneRegion))
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *string
	}{
		{"trailing space and case", "Test@Example.COM ", ptr("test@example.com")},
		{"embedded whitespace", " user .name@ example.co.il", ptr("user.name@example.co.il")},
		{"already canonical", "a@b.com", ptr("a@b.com")},
		{"empty", "", nil},
		{"whitespace only", "  \t ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEmail(tt.input)
			assert.Equal(t, tt.expected, got)
			if got != nil {
				assert.Equal(t, got, NormalizeEmail(*got), "idempotent")
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid", "user.name@example.co.il", true},
		{"missing domain", "test@", false},
		{"missing local", "@example.com", false},
		{"no dot in domain", "user@localhost", false},
		{"two at signs", "a@b@c.com", false},
		{"embedded space", "a b@c.com", false},
		{"no at sign", "example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidEmail(tt.input))
		})
	}
}

func TestResolveSentinel(t *testing.T) {
	sentinels := NewSentinelSet(constants.DefaultSentinels)

	tests := []struct {
		name     string
		input    string
		expected *string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"none lower", "none", nil},
		{"None mixed case", " None ", nil},
		{"NaN", "NaN", nil},
		{"hebrew none", "אין", nil},
		{"hebrew no apartment", "ללא דירה", nil},
		{"real value trimmed", "  כהן ", ptr("כהן")},
		{"value containing a sentinel word", "none of the above", ptr("none of the above")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveSentinel(tt.input, sentinels))
		})
	}
}

func TestSentinelSet_EmptyStringAlwaysMember(t *testing.T) {
	sentinels := NewSentinelSet([]string{"n/a"})

	assert.True(t, sentinels.Contains(""))
	assert.True(t, sentinels.Contains("N/A"))
	assert.False(t, sentinels.Contains("none"))
	assert.Equal(t, 2, sentinels.Len())
	assert.Nil(t, sentinels.Resolve(nil))
	assert.Equal(t, ptr("x"), sentinels.Resolve(ptr(" x ")))
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected int
	}{
		{"absent", nil, 0},
		{"integer", ptr("2"), 2},
		{"integral float", ptr("2.0"), 2},
		{"padded", ptr(" 3 "), 3},
		{"fraction", ptr("2.5"), 0},
		{"text", ptr("abc"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseInt(tt.input, 0))
		})
	}
}

func TestParseCode(t *testing.T) {
	code, err := ParseCode("270")
	require.NoError(t, err)
	assert.Equal(t, int64(270), code)

	code, err = ParseCode("270.0")
	require.NoError(t, err)
	assert.Equal(t, int64(270), code)

	_, err = ParseCode("abc")
	assert.Error(t, err)

	_, err = ParseCode("270.5")
	assert.Error(t, err)

	_, err = ParseCode(" ")
	assert.Error(t, err)

	code, err = ParseCode(" 364.00 ")
	require.NoError(t, err)
	assert.Equal(t, int64(364), code)

	code, err = ParseCode("+5")
	require.NoError(t, err)
	assert.Equal(t, int64(5), code)

	for _, rejected := range []string{"1e3", "1E3", "0x1p4", "0x10", "1_000", "Inf", "NaN", ".5", "5.", "1,000",
		"99999999999999999999"} {
		_, err := ParseCode(rejected)
		assert.Error(t, err, rejected)
	}
}

func TestParseInt_RejectsNonDecimalForms(t *testing.T) {
	assert.Equal(t, 0, ParseInt(ptr("1e3"), 0))
	assert.Equal(t, 0, ParseInt(ptr("1_000"), 0))
	assert.Equal(t, 2, ParseInt(ptr("2.0"), 0))
}

func ptr(s string) *string {
	return &s
}
