package timber

import (
	"github.com/shopspring/decimal"
)

const (
	// CalculationBasis is the fixed factor of the log volume formula,
	// calibrated against the mill's reference spreadsheet.
	CalculationBasis = 785

	// volumeDivisor converts raw volume into billable points ("the million rule").
	volumeDivisor = 1_000_000
)

// Valuation is the computed value snapshot of a log purchase. It is captured
// once at purchase entry and stored immutably on the Log.
type Valuation struct {
	Diameter    decimal.Decimal
	RawVolume   decimal.Decimal
	VolumeFinal decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Valuate converts physical log dimensions and a market price into the
// standardized volume and purchase price.
//
// The formula is load-bearing and must reproduce the reference spreadsheet
// exactly:
//
//	diameter    = circumference / 4
//	rawVolume   = diameter^2 * length * 785 * quantity
//	volumeFinal = floor(rawVolume / 1,000,000)
//	totalPrice  = volumeFinal * marketPrice
//
// Valuate is a pure function. Input validation (negative or zero values)
// belongs to the caller boundary.
func Valuate(circumference, length decimal.Decimal, quantity int64, marketPrice decimal.Decimal) Valuation {
	diameter := circumference.Div(decimal.NewFromInt(4))

	rawVolume := diameter.Mul(diameter).
		Mul(length).
		Mul(decimal.NewFromInt(CalculationBasis)).
		Mul(decimal.NewFromInt(quantity))

	volumeFinal := rawVolume.Div(decimal.NewFromInt(volumeDivisor)).Floor()

	return Valuation{
		Diameter:    diameter,
		RawVolume:   rawVolume,
		VolumeFinal: volumeFinal,
		TotalPrice:  volumeFinal.Mul(marketPrice),
	}
}
