package timber

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValuate(t *testing.T) {
	t.Run("reproduces spreadsheet row exactly", func(t *testing.T) {
		v := Valuate(
			decimal.NewFromInt(87),
			decimal.NewFromInt(300),
			2,
			decimal.NewFromInt(1300),
		)

		assert.Equal(t, "21.75", v.Diameter.String())
		assert.Equal(t, "222812437.5", v.RawVolume.String())
		assert.Equal(t, "222", v.VolumeFinal.String())
		assert.Equal(t, "288600", v.TotalPrice.String())
	})

	t.Run("truncates fractional points instead of rounding", func(t *testing.T) {
		// Single log of the same dimensions: raw volume 111,406,218.75
		// must floor to 111 points, never round to 111.4.
		v := Valuate(
			decimal.NewFromInt(87),
			decimal.NewFromInt(300),
			1,
			decimal.NewFromInt(1300),
		)

		assert.Equal(t, "111406218.75", v.RawVolume.String())
		assert.Equal(t, "111", v.VolumeFinal.String())
		assert.Equal(t, "144300", v.TotalPrice.String())
	})

	t.Run("scales linearly with quantity", func(t *testing.T) {
		v := Valuate(
			decimal.NewFromInt(100),
			decimal.NewFromInt(200),
			100,
			decimal.NewFromInt(1000),
		)

		assert.Equal(t, "25", v.Diameter.String())
		assert.Equal(t, "9812500000", v.RawVolume.String())
		assert.Equal(t, "9812", v.VolumeFinal.String())
		assert.Equal(t, "9812000", v.TotalPrice.String())
	})

	t.Run("zero quantity yields zero volume and price", func(t *testing.T) {
		v := Valuate(
			decimal.NewFromInt(87),
			decimal.NewFromInt(300),
			0,
			decimal.NewFromInt(1300),
		)

		assert.True(t, v.RawVolume.IsZero())
		assert.True(t, v.VolumeFinal.IsZero())
		assert.True(t, v.TotalPrice.IsZero())
	})

	t.Run("sub-point volume floors to zero", func(t *testing.T) {
		v := Valuate(
			decimal.NewFromInt(4),
			decimal.NewFromInt(10),
			1,
			decimal.NewFromInt(500),
		)

		// 1^2 * 10 * 785 = 7850 raw, well under one million.
		assert.Equal(t, "7850", v.RawVolume.String())
		assert.True(t, v.VolumeFinal.IsZero())
		assert.True(t, v.TotalPrice.IsZero())
	})
}
