package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/beesolve/internal/model"
)

func TestNewPuzzle(t *testing.T) {
	tests := []struct {
		name    string
		letters string
		center  string
		want    model.Puzzle
		wantErr error
	}{
		{
			name:    "valid lowercase input",
			letters: "tracles",
			center:  "t",
			want:    model.Puzzle{Letters: "ACELRST", Center: 'T'},
		},
		{
			name:    "duplicates and noise collapse to seven letters",
			letters: "T-R-A-C-L-E-S-S-S",
			center:  " t ",
			want:    model.Puzzle{Letters: "ACELRST", Center: 'T'},
		},
		{
			name:    "too few letters",
			letters: "abc",
			center:  "a",
			wantErr: ErrLetterCount,
		},
		{
			name:    "too many letters",
			letters: "abcdefgh",
			center:  "a",
			wantErr: ErrLetterCount,
		},
		{
			name:    "empty letters",
			letters: "",
			center:  "a",
			wantErr: ErrLetterCount,
		},
		{
			name:    "center outside letters",
			letters: "tracles",
			center:  "q",
			wantErr: ErrInvalidCenter,
		},
		{
			name:    "missing center",
			letters: "tracles",
			center:  "",
			wantErr: ErrInvalidCenter,
		},
		{
			name:    "two center letters",
			letters: "tracles",
			center:  "ta",
			wantErr: ErrInvalidCenter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPuzzle(tt.letters, tt.center)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormMessage(t *testing.T) {
	_, err := NewPuzzle("abc", "a")
	assert.Equal(t, "Enter 7 letters", FormMessage(err))

	_, err = NewPuzzle("tracles", "q")
	assert.Equal(t, "Invalid letter", FormMessage(err))

	assert.Equal(t, "boom", FormMessage(errors.New("boom")))
}

func TestNewPuzzleAcceptsEveryLetterAsCenter(t *testing.T) {
	for _, center := range "ACELRST" {
		var p model.Puzzle
		var err error
		require.NotPanics(t, func() {
			p, err = NewPuzzle("tracles", string(center))
		})
		require.NoError(t, err)
		assert.Equal(t, center, p.Center)
	}

	_, err := NewPuzzle("tracles", "z")
	assert.ErrorIs(t, err, ErrInvalidCenter)
}
