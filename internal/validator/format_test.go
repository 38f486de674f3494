package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstaudit/internal/domain"
	"gstaudit/internal/validator"
)

func TestFormat_GSTIN(t *testing.T) {
	v := findValidator(validator.RuleGSTINFormat)
	require.NotNil(t, v)

	tests := []struct {
		gstin string
		ok    bool
	}{
		{"33AABCS1234F1Z5", true},
		{"33aabcs1234f1z5", true},
		{"", true},
		{"33AABCS1234F1Z", false},
		{"GSTIN-NOT-FOUND", false},
	}
	for _, tt := range tests {
		t.Run(tt.gstin, func(t *testing.T) {
			d := validDraft()
			d.GSTIN = tt.gstin
			ws := v.Validate(d)
			if tt.ok {
				assert.Empty(t, ws)
				return
			}
			require.Len(t, ws, 1)
			assert.Equal(t, domain.SeverityInfo, ws[0].Severity)
			assert.True(t, ws[0].Penalty.IsZero())
		})
	}
}
