package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlug(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"Valid", "poets-corner", false},
		{"Valid With Numbers", "cats-2026", false},
		{"Too Short", "ab", true},
		{"Too Long", strings.Repeat("a", 65), true},
		{"Uppercase", "Poets", true},
		{"Illegal Chars", "poets corner", true},
		{"Starts Hyphen", "-poets", true},
		{"Ends Hyphen", "poets-", true},
		{"Reserved", "admin", true},
		{"Reserved Route", "feed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
