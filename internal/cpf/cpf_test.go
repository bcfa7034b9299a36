package cpf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reference = "52998224725"

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantFmt   string
		wantEmpty bool
	}{
		{name: "plain digits", input: "52998224725", wantValid: true, wantFmt: "529.982.247-25"},
		{name: "already formatted", input: "529.982.247-25", wantValid: true, wantFmt: "529.982.247-25"},
		{name: "noise around digits", input: "  cpf: 111.444.777/35 ", wantValid: true, wantFmt: "111.444.777-35"},
		{name: "wrong first check digit", input: "52998224735", wantValid: false, wantFmt: "529.982.247-35"},
		{name: "wrong second check digit", input: "52998224726", wantValid: false, wantFmt: "529.982.247-26"},
		{name: "short input is zero padded", input: "1234", wantValid: false, wantFmt: "000.000.012-34"},
		{name: "too long stays unformatted", input: "529982247251", wantValid: false, wantFmt: "529982247251"},
		{name: "empty", input: "", wantEmpty: true},
		{name: "no digits", input: "abc-./", wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.input)
			assert.Equal(t, tt.wantEmpty, got.Empty)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantFmt, got.Formatted)
		})
	}
}

func TestValidate_RepeatedDigitsInvalid(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		digits := strings.Repeat(string(d), Length)
		assert.False(t, Validate(digits).Valid, "repeated %q must be invalid", digits)
	}
}

func TestValidate_FlippingCheckDigitInvalidates(t *testing.T) {
	require.True(t, IsValid(reference))

	for _, pos := range []int{9, 10} {
		b := []byte(reference)
		b[pos] = '0' + (b[pos]-'0'+1)%10
		assert.False(t, IsValid(string(b)), "flipped position %d", pos)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{reference, "111.444.777-35", "00000000191", "12345678909"}
	for _, in := range inputs {
		cleaned := Clean(in)
		assert.Equal(t, cleaned, Clean(Format(cleaned)), "input %q", in)
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "01234567890", Pad("1234567890"))
	assert.Equal(t, "00000000000", Pad(""))
	assert.Equal(t, "123456789012", Pad("123456789012"))
}

func TestCheckDigits(t *testing.T) {
	got, ok := CheckDigits("529982247")
	require.True(t, ok)
	assert.Equal(t, "25", got)

	got, ok = CheckDigits("111444777")
	require.True(t, ok)
	assert.Equal(t, "35", got)

	_, ok = CheckDigits("12345")
	assert.False(t, ok)
}
