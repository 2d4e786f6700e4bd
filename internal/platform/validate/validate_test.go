// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
	"github.com/mkuznet/cinelog/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Cinelog", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_EmailLike checks the structural email rule (must contain "@").
*/
func TestValidator_EmailLike(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"minimal_at", "a@b", true},
		{"no_at_sign", "bademail", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.EmailLike("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Dates covers the release-date lower bound and the
birthday-in-the-future rules.
*/
func TestValidator_Dates(t *testing.T) {
	cinemaEpoch := time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

	t.Run("not_before_boundary", func(t *testing.T) {
		v := &validate.Validator{}
		v.NotBefore("releaseDate", cinemaEpoch, cinemaEpoch)
		assert.False(t, v.HasErrors())
	})

	t.Run("not_before_violation", func(t *testing.T) {
		v := &validate.Validator{}
		v.NotBefore("releaseDate", cinemaEpoch.AddDate(0, 0, -1), cinemaEpoch)
		assert.True(t, v.HasErrors())
	})

	t.Run("not_future_past_ok", func(t *testing.T) {
		v := &validate.Validator{}
		v.NotFuture("birthday", time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC))
		assert.False(t, v.HasErrors())
	})

	t.Run("not_future_violation", func(t *testing.T) {
		v := &validate.Validator{}
		v.NotFuture("birthday", time.Now().AddDate(1, 0, 0))
		assert.True(t, v.HasErrors())
	})
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("name", "Interstellar").
		MaxLen("description", "sci-fi epic", 200).
		Positive("duration", 169).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation order in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").          // Fails
		Positive("duration", -5).      // Fails
		EmailLike("email", "bademail"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors, highest priority first
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, "name", ae.Details[0].Field)
}
