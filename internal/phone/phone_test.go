package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"eleven digits", "91987654321", "(91)98765-4321"},
		{"eleven with punctuation", "(91) 9 8765-4321", "(91)98765-4321"},
		{"ten digits", "9132214567", "(91)32214-567"},
		{"short is padded", "32214567", "(00)32214-567"},
		{"longer keeps last ten", "+55 91 3221-4567", "(91)32214-567"},
		{"no digits", "n/a", "(00)00000-000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormatLine_BlankStaysBlank(t *testing.T) {
	assert.Equal(t, "", FormatLine("   "))
	assert.Equal(t, "(91)98765-4321", FormatLine("  91987654321 "))
}
