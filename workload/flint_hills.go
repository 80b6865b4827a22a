package workload

import (
	"github.com/ericlagergren/decimal"
)

var (
	precCtx = decimal.Context128
)

// Partial sum of the Flint-Hills series 1/(k^3 sin^2 k) for k = 1..terms
// (https://arxiv.org/abs/1104.5100)
func FlintHillsSum(terms int) *decimal.Big {
	one := decimal.New(1, 0)
	sum := new(decimal.Big)
	k := new(decimal.Big)
	sinK := new(decimal.Big)
	denom := new(decimal.Big)

	for i := 1; i <= terms; i++ {
		k.SetUint64(uint64(i))
		precCtx.Sin(sinK, k)
		precCtx.Mul(denom, sinK, sinK) // sin^2 k
		precCtx.Mul(denom, denom, k)   // k sin^2 k
		precCtx.Mul(denom, denom, k)   // k^2 sin^2 k
		precCtx.Mul(denom, denom, k)   // k^3 sin^2 k
		precCtx.Quo(denom, one, denom)
		precCtx.Add(sum, sum, denom)
	}

	return sum
}

// Sum scaled by 1e6 and truncated, so that it fits the numeric result column
func scaledSum(sum *decimal.Big) uint64 {
	f, _ := sum.Float64()
	return uint64(f * 1e6)
}
