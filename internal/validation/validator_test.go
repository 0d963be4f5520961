package validation_test

import (
	"errors"
	"testing"

	"github.com/meeplestats/meeplestats/internal/validation"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID       int      `json:"id" validate:"gt=0"`
	Kind     string   `json:"kind" validate:"required,oneof=games players"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Untagged int      `validate:"lte=10"`
}

type container struct {
	Items []item `json:"items" validate:"dive"`
}

func TestValidate(t *testing.T) {
	t.Parallel()

	v := validation.New()
	negative := -1.0

	cases := []struct {
		name  string
		input any
		want  validation.FieldErrors
	}{
		{
			name:  "valid",
			input: item{ID: 1, Kind: "games"},
		},
		{
			name:  "json names",
			input: item{ID: 0, Kind: "", Price: &negative},
			want: validation.FieldErrors{
				"id":    "must be greater than 0",
				"kind":  "is required",
				"price": "must be greater than or equal to 0",
			},
		},
		{
			name:  "struct field name without json tag",
			input: item{ID: 1, Kind: "players", Untagged: 11},
			want:  validation.FieldErrors{"Untagged": "must be less than or equal to 10"},
		},
		{
			name:  "oneof",
			input: item{ID: 1, Kind: "locations"},
			want:  validation.FieldErrors{"kind": "must be one of: games players"},
		},
		{
			name:  "nested",
			input: container{Items: []item{{ID: 1, Kind: "games"}, {ID: -3, Kind: "games"}}},
			want:  validation.FieldErrors{"items[1].id": "must be greater than 0"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(c.input)
			if c.want == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, validation.ErrValidation)
			var fieldErrors validation.FieldErrors
			require.True(t, errors.As(err, &fieldErrors))
			require.Equal(t, c.want, fieldErrors)
		})
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	t.Parallel()

	err := validation.FieldErrors{"year": "must be less than or equal to 9999", "metric": "is required"}
	require.Equal(t, "metric is required, year must be less than or equal to 9999", err.Error())
}
