package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		members   []string
		wantErr   bool
		wantShare string
		wantSum   string
	}{
		{
			name:      "divides evenly",
			total:     "30.00",
			members:   []string{"u1", "u2", "u3"},
			wantShare: "10.00",
			wantSum:   "30.00",
		},
		{
			name:      "two members with cents",
			total:     "25.50",
			members:   []string{"u1", "u2"},
			wantShare: "12.75",
			wantSum:   "25.50",
		},
		{
			// 10 / 3 = 3.333... -> each share 3.33, sum 9.99. The one
			// cent of drift is preserved, not reassigned.
			name:      "rounding drift preserved",
			total:     "10.00",
			members:   []string{"u1", "u2", "u3"},
			wantShare: "3.33",
			wantSum:   "9.99",
		},
		{
			// 0.05 / 2 = 0.025 -> rounds half-up to 0.03 each.
			name:      "half rounds up",
			total:     "0.05",
			members:   []string{"u1", "u2"},
			wantShare: "0.03",
			wantSum:   "0.06",
		},
		{
			name:    "empty member list",
			total:   "10.00",
			members: nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := EqualSplit(dec(tt.total), tt.members)
			if tt.wantErr {
				if !errors.Is(err, ErrNoMembers) {
					t.Fatalf("EqualSplit() error = %v, want ErrNoMembers", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualSplit() error = %v", err)
			}
			if len(shares) != len(tt.members) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.members))
			}

			sum := decimal.Zero
			for id, share := range shares {
				if share.StringFixed(2) != tt.wantShare {
					t.Errorf("share for %s = %s, want %s", id, share.StringFixed(2), tt.wantShare)
				}
				sum = sum.Add(share)
			}
			if sum.StringFixed(2) != tt.wantSum {
				t.Errorf("sum of shares = %s, want %s", sum.StringFixed(2), tt.wantSum)
			}
		})
	}
}

func TestEqualSplitDriftWithinTolerance(t *testing.T) {
	// Property: for N members with total T, sum of shares is within
	// 0.005 * N of T.
	totals := []string{"10.00", "100.01", "0.07", "33.33", "999.99"}
	for _, total := range totals {
		for n := 1; n <= 7; n++ {
			members := make([]string, n)
			for i := range members {
				members[i] = string(rune('a' + i))
			}

			shares, err := EqualSplit(dec(total), members)
			if err != nil {
				t.Fatalf("EqualSplit(%s, %d) error = %v", total, n, err)
			}

			sum := decimal.Zero
			for _, share := range shares {
				sum = sum.Add(share)
			}

			bound := decimal.New(5, -3).Mul(decimal.NewFromInt(int64(n)))
			drift := sum.Sub(dec(total)).Abs()
			if drift.GreaterThan(bound) {
				t.Errorf("total=%s n=%d: drift %s exceeds %s", total, n, drift, bound)
			}
		}
	}
}

func TestValidateSplits(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		splits       []SplitInput
		wantErr      bool
		wantMismatch bool
	}{
		{
			name:  "exact sum",
			total: "30.00",
			splits: []SplitInput{
				{UserID: "u1", AmountOwed: dec("12.50")},
				{UserID: "u2", AmountOwed: dec("17.50")},
			},
		},
		{
			name:  "off by one cent is tolerated",
			total: "10.00",
			splits: []SplitInput{
				{UserID: "u1", AmountOwed: dec("3.33")},
				{UserID: "u2", AmountOwed: dec("3.33")},
				{UserID: "u3", AmountOwed: dec("3.33")},
			},
		},
		{
			name:  "off by two cents fails",
			total: "10.00",
			splits: []SplitInput{
				{UserID: "u1", AmountOwed: dec("4.99")},
				{UserID: "u2", AmountOwed: dec("4.99")},
			},
			wantErr:      true,
			wantMismatch: true,
		},
		{
			name:  "overshoot fails",
			total: "10.00",
			splits: []SplitInput{
				{UserID: "u1", AmountOwed: dec("6.00")},
				{UserID: "u2", AmountOwed: dec("6.00")},
			},
			wantErr:      true,
			wantMismatch: true,
		},
		{
			name:  "non-positive amount fails",
			total: "10.00",
			splits: []SplitInput{
				{UserID: "u1", AmountOwed: dec("10.00")},
				{UserID: "u2", AmountOwed: dec("0.00")},
			},
			wantErr: true,
		},
		{
			name:   "no splits fails",
			total:  "10.00",
			splits: nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSplits(dec(tt.total), tt.splits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSplits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantMismatch {
				var mismatch *SumMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("error = %v, want *SumMismatchError", err)
				}
				if mismatch.Expected.StringFixed(2) != tt.total {
					t.Errorf("mismatch.Expected = %s, want %s", mismatch.Expected.StringFixed(2), tt.total)
				}
			}
		})
	}
}

func TestSumMismatchErrorMessage(t *testing.T) {
	err := &SumMismatchError{Computed: dec("9.98"), Expected: dec("10.00")}
	want := "splits sum to 9.98, expected 10.00"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
