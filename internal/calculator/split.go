package calculator

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/mmynk/splitledger/internal/models"
)

// BasisPointsTotal is the basis-point sum a percentage split must reach (100%).
const BasisPointsTotal = 10000

// ErrInvalidSplit is returned when an expense cannot be split as requested.
var ErrInvalidSplit = errors.New("invalid split")

// ComputeShares divides total among participants according to policy and
// returns one share per participant, in participant order.
//
// Equal and percentage splits truncate each share. The remainder is not
// distributed, so the shares may sum to less than total:
//
//	ComputeShares(10, [a b c], SplitEqual, nil) = [3 3 3]
func ComputeShares(total int64, participants []string, policy models.SplitPolicy, aux []int64) ([]int64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: total must be positive, got %d", ErrInvalidSplit, total)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: must have at least one participant", ErrInvalidSplit)
	}

	n := len(participants)
	shares := make([]int64, n)

	switch policy {
	case models.SplitEqual:
		per := total / int64(n)
		for i := range shares {
			shares[i] = per
		}

	case models.SplitExact:
		if len(aux) != n {
			return nil, fmt.Errorf("%w: got %d exact shares for %d participants", ErrInvalidSplit, len(aux), n)
		}
		var sum int64
		for i, amount := range aux {
			if amount < 0 {
				return nil, fmt.Errorf("%w: negative share %d for %s", ErrInvalidSplit, amount, participants[i])
			}
			if amount > total-sum {
				return nil, fmt.Errorf("%w: exact shares exceed total %d", ErrInvalidSplit, total)
			}
			shares[i] = amount
			sum += amount
		}
		if sum != total {
			return nil, fmt.Errorf("%w: exact shares sum to %d, want %d", ErrInvalidSplit, sum, total)
		}

	case models.SplitPercentage:
		if len(aux) != n {
			return nil, fmt.Errorf("%w: got %d percentages for %d participants", ErrInvalidSplit, len(aux), n)
		}
		var sum int64
		for i, bps := range aux {
			if bps < 0 {
				return nil, fmt.Errorf("%w: negative percentage %d for %s", ErrInvalidSplit, bps, participants[i])
			}
			if bps > BasisPointsTotal-sum {
				return nil, fmt.Errorf("%w: percentages exceed %d basis points", ErrInvalidSplit, BasisPointsTotal)
			}
			sum += bps
		}
		if sum != BasisPointsTotal {
			return nil, fmt.Errorf("%w: percentages sum to %d basis points, want %d", ErrInvalidSplit, sum, BasisPointsTotal)
		}
		for i, bps := range aux {
			shares[i] = percentOf(total, bps)
		}

	default:
		return nil, fmt.Errorf("%w: unknown policy %v", ErrInvalidSplit, policy)
	}

	return shares, nil
}

// percentOf returns floor(total*bps/BasisPointsTotal) without overflowing.
// total must be positive and bps within [0, BasisPointsTotal], so the 128-bit
// product's high word stays below the divisor and the quotient fits in total.
func percentOf(total, bps int64) int64 {
	hi, lo := bits.Mul64(uint64(total), uint64(bps))
	q, _ := bits.Div64(hi, lo, BasisPointsTotal)
	return int64(q)
}
