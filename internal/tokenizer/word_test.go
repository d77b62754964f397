package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/errors"
)

func TestCheckWord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain word", "speling", "speling", false},
		{"surrounding whitespace trimmed", " \tQwick\r\n", "Qwick", false},
		{"non-ascii", "café", "café", false},
		{"at length limit", strings.Repeat("é", config.MaxWordLength), strings.Repeat("é", config.MaxWordLength), false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"inner space", "two words", "two words", true},
		{"inner carriage return", "two\rwords", "two\rwords", true},
		{"inner no-break space", "two\u00a0words", "two\u00a0words", true},
		{"invalid utf-8", "ab\xff", "ab\xff", true},
		{"over length limit", strings.Repeat("a", config.MaxWordLength+1), strings.Repeat("a", config.MaxWordLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckWord(tt.input)
			assert.Equal(t, tt.want, got)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
			var validationErr *errors.ValidationError
			if assert.ErrorAs(t, err, &validationErr) {
				assert.Equal(t, "word", validationErr.Field)
			}
		})
	}
}
