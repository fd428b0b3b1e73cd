package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAmount(t *testing.T) {
	t.Run("numeric values", func(t *testing.T) {
		v := asAmount(float64(123.45))
		require.NotNil(t, v)
		assert.Equal(t, 123.45, *v)

		v = asAmount(int(7))
		require.NotNil(t, v)
		assert.Equal(t, 7.0, *v)
	})

	t.Run("dollar strings", func(t *testing.T) {
		v := asAmount("$1,234.50")
		require.NotNil(t, v)
		assert.Equal(t, 1234.50, *v)

		v = asAmount("  45.00 ")
		require.NotNil(t, v)
		assert.Equal(t, 45.0, *v)
	})

	t.Run("null and garbage abstain", func(t *testing.T) {
		assert.Nil(t, asAmount(nil))
		assert.Nil(t, asAmount("not a number"))
		assert.Nil(t, asAmount(""))
		assert.Nil(t, asAmount([]any{1.0}))
	})
}

func TestAsDate(t *testing.T) {
	t.Run("iso and us layouts", func(t *testing.T) {
		d := asDate("2026-02-14")
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), *d)

		d = asDate("02/14/2026")
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("malformed yields nil", func(t *testing.T) {
		assert.Nil(t, asDate("14 February"))
		assert.Nil(t, asDate(nil))
		assert.Nil(t, asDate(20260214))
	})
}

func TestAmountsEqual(t *testing.T) {
	assert.True(t, amountsEqual(100.00, 100.005))
	assert.True(t, amountsEqual(378.00, 378.00))
	assert.False(t, amountsEqual(100.00, 100.02))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, round2(10.567))
	assert.Equal(t, -10.56, round2(-10.564))
	assert.Equal(t, 0.0, round2(0))
}
