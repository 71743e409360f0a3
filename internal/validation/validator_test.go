package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/bookrec/internal/errors"
	"github.com/listenupapp/bookrec/internal/validation"
)

type queryRequest struct {
	Username  string `json:"username" validate:"max=10"`
	Choice    string `json:"choice" validate:"required,oneof=1 2"`
	InputData string `json:"input_data,omitempty" validate:"max=20"`
	TopN      int    `json:"top_n" validate:"gte=0,lte=50"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(queryRequest{Username: "alice", Choice: "2", InputData: "Dune", TopN: 10})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       queryRequest
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing choice",
			req:       queryRequest{InputData: "Dune"},
			wantField: "choice",
			wantMsg:   "is required",
		},
		{
			name:      "unknown choice",
			req:       queryRequest{Choice: "9"},
			wantField: "choice",
			wantMsg:   "must be one of: 1 2",
		},
		{
			name:      "query too long",
			req:       queryRequest{Choice: "2", InputData: "A Very Long Title That Overflows"},
			wantField: "input_data",
			wantMsg:   "must not exceed 20 characters",
		},
		{
			name:      "top n out of range",
			req:       queryRequest{Choice: "2", TopN: 51},
			wantField: "top_n",
			wantMsg:   "must be less than or equal to 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}
