package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	t.Parallel()

	t.Run("parse and format", func(t *testing.T) {
		t.Parallel()

		date, err := domain.ParseDate("2024-02-29")
		require.NoError(t, err)
		require.Equal(t, domain.NewDate(2024, time.February, 29), date)
		require.Equal(t, "2024-02-29", date.String())

		for _, raw := range []string{"", "2023-02-29", "2024-13-01", "15/01/2024", "2024-01-15T10:00:00Z"} {
			_, err := domain.ParseDate(raw)
			require.Error(t, err, raw)
		}
	})

	t.Run("DateOf uses the location of the time", func(t *testing.T) {
		t.Parallel()

		oslo, err := time.LoadLocation("Europe/Oslo")
		if err != nil {
			t.Skip("time zone database not available")
		}
		late := time.Date(2024, time.December, 31, 23, 30, 0, 0, oslo)
		require.Equal(t, domain.NewDate(2024, time.December, 31), domain.DateOf(late))
		require.Equal(t, domain.NewDate(2024, time.December, 31), domain.DateOf(late.UTC()))
	})

	t.Run("AddDays and DaysUntil", func(t *testing.T) {
		t.Parallel()

		start := domain.NewDate(2024, time.February, 27)
		require.Equal(t, domain.NewDate(2024, time.March, 1), start.AddDays(3))
		require.Equal(t, domain.NewDate(2023, time.December, 31), domain.NewDate(2024, time.January, 1).AddDays(-1))

		require.Equal(t, 3, start.DaysUntil(start.AddDays(3)))
		require.Equal(t, -3, start.AddDays(3).DaysUntil(start))
		require.Equal(t, 366, domain.NewDate(2024, time.January, 1).DaysUntil(domain.NewDate(2025, time.January, 1)))
		require.Equal(t, 0, start.DaysUntil(start))
	})

	t.Run("compare", func(t *testing.T) {
		t.Parallel()

		a := domain.NewDate(2023, time.December, 31)
		b := domain.NewDate(2024, time.January, 1)
		c := domain.NewDate(2024, time.January, 2)

		require.Equal(t, -1, a.Compare(b))
		require.Equal(t, 1, c.Compare(b))
		require.Equal(t, 0, b.Compare(domain.NewDate(2024, time.January, 1)))
		require.True(t, a.Before(b))
		require.True(t, c.After(b))
		require.False(t, b.After(b))
		require.True(t, domain.Date{}.IsZero())
		require.False(t, a.IsZero())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		type wrapper struct {
			Date  domain.Date  `json:"date"`
			Maybe *domain.Date `json:"maybe"`
		}

		data, err := json.Marshal(wrapper{Date: domain.NewDate(2024, time.January, 5)})
		require.NoError(t, err)
		require.JSONEq(t, `{"date": "2024-01-05", "maybe": null}`, string(data))

		var decoded wrapper
		require.NoError(t, json.Unmarshal([]byte(`{"date": "2021-07-09", "maybe": "2020-01-01"}`), &decoded))
		require.Equal(t, domain.NewDate(2021, time.July, 9), decoded.Date)
		require.Equal(t, domain.NewDate(2020, time.January, 1), *decoded.Maybe)

		require.Error(t, json.Unmarshal([]byte(`{"date": "yesterday"}`), &decoded))
	})
}
