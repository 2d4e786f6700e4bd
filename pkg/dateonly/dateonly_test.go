// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

package dateonly_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuznet/cinelog/pkg/dateonly"
)

/*
TestDate_JSONRoundTrip checks the "2006-01-02" wire contract.
*/
func TestDate_JSONRoundTrip(t *testing.T) {
	d := dateonly.New(1895, time.December, 28)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1895-12-28"`, string(raw))

	var parsed dateonly.Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

/*
TestDate_UnmarshalNull treats null and empty as the zero date.
*/
func TestDate_UnmarshalNull(t *testing.T) {
	var d dateonly.Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

/*
TestDate_UnmarshalInvalid rejects values with a time component.
*/
func TestDate_UnmarshalInvalid(t *testing.T) {
	var d dateonly.Date
	err := json.Unmarshal([]byte(`"2020-01-02T15:04:05Z"`), &d)
	require.Error(t, err)
}

/*
TestDate_Comparisons exercises the embedded time helpers used by the
validation rules.
*/
func TestDate_Comparisons(t *testing.T) {
	epoch := dateonly.New(1895, time.December, 28)
	before := dateonly.New(1895, time.December, 27)

	assert.True(t, before.Before(epoch.Time))
	assert.False(t, epoch.Before(epoch.Time))
}
