package model

import (
	"github.com/shopspring/decimal"
)

const SOLDecimals = 9

// SOLToLamports converts a SOL amount to whole lamports, truncating sub-lamport dust.
func SOLToLamports(amount float64) uint64 {
	lamports := decimal.NewFromFloat(amount).Shift(SOLDecimals).Truncate(0)
	if lamports.IsNegative() {
		return 0
	}
	return uint64(lamports.IntPart())
}

func LamportsToSOL(lamports uint64) float64 {
	return decimal.NewFromUint64(lamports).Shift(-SOLDecimals).InexactFloat64()
}

// FiatAmountAfterFee applies amount * (1 - feePercentage/100).
func FiatAmountAfterFee(amount, feePercentage float64) float64 {
	hundred := decimal.NewFromInt(100)
	rate := hundred.Sub(decimal.NewFromFloat(feePercentage)).Div(hundred)
	return decimal.NewFromFloat(amount).Mul(rate).InexactFloat64()
}

// FeeAmount is the portion withheld by FiatAmountAfterFee.
func FeeAmount(amount, feePercentage float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(feePercentage)).
		Div(decimal.NewFromInt(100)).
		InexactFloat64()
}
