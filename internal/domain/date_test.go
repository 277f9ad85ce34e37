package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		d, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, NewDate(2024, time.January, 15), d)
		assert.Equal(t, "2024-01-15", d.String())
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("15/01/2024")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expected yyyy-mm-dd")
	})

	t.Run("Invalid day", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
	})
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2024, time.July, 15, 23, 30, 0, 0, loc)
	assert.Equal(t, NewDate(2024, time.July, 15), DateOf(ts))
}

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	assert.Equal(t, NewDate(2024, time.March, 1), d.AddDays(2))
	assert.Equal(t, NewDate(2024, time.January, 29), d.AddDays(-30))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.True(t, d.Equal(NewDate(2024, time.February, 28)))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Start Date  `json:"start"`
		End   *Date `json:"end,omitempty"`
	}

	t.Run("Marshal", func(t *testing.T) {
		data, err := json.Marshal(payload{Start: NewDate(2024, time.July, 10)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"start":"2024-07-10"}`, string(data))
	})

	t.Run("Unmarshal", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-07-10","end":"2024-07-15"}`), &p))
		assert.Equal(t, NewDate(2024, time.July, 10), p.Start)
		require.NotNil(t, p.End)
		assert.Equal(t, NewDate(2024, time.July, 15), *p.End)
	})

	t.Run("Unmarshal empty", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"start":""}`), &p))
		assert.True(t, p.Start.IsZero())
	})

	t.Run("Unmarshal invalid", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"start":"10/07/2024"}`), &p))
	})
}
