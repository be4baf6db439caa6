package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		participants []Member
		want         map[Member]string
		wantErr      error
	}{
		{
			name:         "even two-way split",
			amount:       "100",
			participants: []Member{"Alice", "Bob"},
			want:         map[Member]string{"Alice": "50.00", "Bob": "50.00"},
		},
		{
			name:         "remainder cent goes to first participant",
			amount:       "100",
			participants: []Member{"Alice", "Bob", "Charlie"},
			want:         map[Member]string{"Alice": "33.34", "Bob": "33.33", "Charlie": "33.33"},
		},
		{
			name:         "two remainder cents",
			amount:       "0.05",
			participants: []Member{"Alice", "Bob", "Charlie"},
			want:         map[Member]string{"Alice": "0.02", "Bob": "0.02", "Charlie": "0.01"},
		},
		{
			name:         "duplicates collapsed",
			amount:       "30",
			participants: []Member{"Alice", "Bob", "Alice"},
			want:         map[Member]string{"Alice": "15.00", "Bob": "15.00"},
		},
		{
			name:         "sub-cent amount rounded before splitting",
			amount:       "10.005",
			participants: []Member{"Alice", "Bob"},
			want:         map[Member]string{"Alice": "5.01", "Bob": "5.00"},
		},
		{
			name:         "no participants",
			amount:       "10",
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "only blank participants",
			amount:       "10",
			participants: []Member{""},
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "zero amount",
			amount:       "0",
			participants: []Member{"Alice"},
			wantErr:      ErrNonPositiveAmount,
		},
		{
			name:         "negative amount",
			amount:       "-5",
			participants: []Member{"Alice"},
			wantErr:      ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := SplitEqually(dec(tt.amount), tt.participants)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, len(tt.want))

			sum := decimal.Zero
			for _, s := range shares {
				assert.Equal(t, tt.want[s.Member], s.Amount.StringFixed(2), "share of %s", s.Member)
				sum = sum.Add(s.Amount)
			}
			assert.True(t, sum.Equal(RoundCents(dec(tt.amount))), "shares sum to %s", sum)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "12.34", want: "12.34"},
		{in: "12,34", want: "12.34"},
		{in: "12,5", want: "12.50"},
		{in: "12,345", wantErr: ErrInvalidAmount},
		{in: "1,234.56", wantErr: ErrInvalidAmount},
		{in: "1,2,3", wantErr: ErrInvalidAmount},
		{in: "12,", wantErr: ErrInvalidAmount},
		{in: "12,e1", wantErr: ErrInvalidAmount},
		{in: " 7 ", want: "7.00"},
		{in: "12.345", want: "12.35"},
		{in: "12.344", want: "12.34"},
		{in: "", wantErr: ErrInvalidAmount},
		{in: "abc", wantErr: ErrInvalidAmount},
		{in: "0", wantErr: ErrNonPositiveAmount},
		{in: "0.004", wantErr: ErrNonPositiveAmount},
		{in: "-3", wantErr: ErrNonPositiveAmount},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestTotal(t *testing.T) {
	expenses := []Expense{
		{Amount: dec("10.50"), Payer: "Alice", Participants: []Member{"Alice"}},
		{Amount: dec("4.25"), Payer: "Bob", Participants: []Member{"Bob"}},
	}
	assert.Equal(t, "14.75", Total(expenses).StringFixed(2))
	assert.True(t, Total(nil).IsZero())
}
