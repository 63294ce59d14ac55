package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func TestComputeShares(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		participants []string
		policy       models.SplitPolicy
		aux          []int64
		want         []int64
		wantErr      bool
	}{
		{
			name:         "equal split divides evenly",
			total:        30000,
			participants: []string{"P", "A", "B"},
			policy:       models.SplitEqual,
			want:         []int64{10000, 10000, 10000},
		},
		{
			name:         "equal split truncates and drops the remainder",
			total:        10,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitEqual,
			want:         []int64{3, 3, 3},
		},
		{
			name:         "equal split ignores aux data",
			total:        100,
			participants: []string{"Alice", "Bob"},
			policy:       models.SplitEqual,
			aux:          []int64{1, 2, 3},
			want:         []int64{50, 50},
		},
		{
			name:         "equal split smaller than participant count",
			total:        2,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitEqual,
			want:         []int64{0, 0, 0},
		},
		{
			name:         "exact split keeps given shares",
			total:        30000,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitExact,
			aux:          []int64{10000, 15000, 5000},
			want:         []int64{10000, 15000, 5000},
		},
		{
			name:         "exact split allows zero shares",
			total:        500,
			participants: []string{"Alice", "Bob"},
			policy:       models.SplitExact,
			aux:          []int64{0, 500},
			want:         []int64{0, 500},
		},
		{
			name:         "exact split with length mismatch",
			total:        30000,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitExact,
			aux:          []int64{15000, 15000},
			wantErr:      true,
		},
		{
			name:         "exact split with sum mismatch",
			total:        30000,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitExact,
			aux:          []int64{10000, 10000, 5000},
			wantErr:      true,
		},
		{
			name:         "exact split with negative share",
			total:        100,
			participants: []string{"Alice", "Bob"},
			policy:       models.SplitExact,
			aux:          []int64{150, -50},
			wantErr:      true,
		},
		{
			name:         "percentage split",
			total:        30000,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitPercentage,
			aux:          []int64{3000, 5000, 2000},
			want:         []int64{9000, 15000, 6000},
		},
		{
			name:         "percentage split truncates each share",
			total:        10,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitPercentage,
			aux:          []int64{3333, 3333, 3334},
			want:         []int64{3, 3, 3},
		},
		{
			name:         "percentage split must reach 100%",
			total:        30000,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitPercentage,
			aux:          []int64{3000, 5000, 1000},
			wantErr:      true,
		},
		{
			name:         "percentage split with length mismatch",
			total:        30000,
			participants: []string{"Alice", "Bob"},
			policy:       models.SplitPercentage,
			aux:          []int64{10000},
			wantErr:      true,
		},
		{
			name:         "percentage split of a huge total",
			total:        10_000_000_000_000_000,
			participants: []string{"P", "A"},
			policy:       models.SplitPercentage,
			aux:          []int64{1000, 9000},
			want:         []int64{1_000_000_000_000_000, 9_000_000_000_000_000},
		},
		{
			name:         "percentage split of the largest total",
			total:        math.MaxInt64,
			participants: []string{"Alice", "Bob"},
			policy:       models.SplitPercentage,
			aux:          []int64{0, 10000},
			want:         []int64{0, math.MaxInt64},
		},
		{
			name:         "percentages wrapping around to 100%",
			total:        100,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitPercentage,
			aux:          []int64{math.MaxInt64, math.MaxInt64, 10002},
			wantErr:      true,
		},
		{
			name:         "exact shares wrapping around to the total",
			total:        1,
			participants: []string{"Alice", "Bob", "Charlie"},
			policy:       models.SplitExact,
			aux:          []int64{math.MaxInt64, math.MaxInt64, 3},
			wantErr:      true,
		},
		{
			name:         "zero total",
			total:        0,
			participants: []string{"Alice"},
			policy:       models.SplitEqual,
			wantErr:      true,
		},
		{
			name:         "no participants",
			total:        100,
			participants: []string{},
			policy:       models.SplitEqual,
			wantErr:      true,
		},
		{
			name:         "unknown policy",
			total:        100,
			participants: []string{"Alice"},
			policy:       models.SplitPolicy(42),
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeShares(tt.total, tt.participants, tt.policy, tt.aux)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ComputeShares() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSplit) {
					t.Errorf("ComputeShares() error = %v, want ErrInvalidSplit", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeShares() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeShares_EqualRemainderIsNotDistributed(t *testing.T) {
	shares, err := ComputeShares(10, []string{"Alice", "Bob", "Charlie"}, models.SplitEqual, nil)
	if err != nil {
		t.Fatalf("ComputeShares failed: %v", err)
	}

	var sum int64
	for _, s := range shares {
		sum += s
	}
	if sum != 9 {
		t.Errorf("sum of shares = %d, want 9 (remainder of 1 is dropped)", sum)
	}
}
