package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/growvest/wallet-service/internal/domain/money"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole units", input: "250", want: 25000},
		{name: "two decimal places", input: "10.50", want: 1050},
		{name: "single cent", input: "0.01", want: 1},
		{name: "trailing zeros", input: "99.90", want: 9990},
		{name: "sub-cent precision rejected", input: "10.005", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "negative parses", input: "-5.25", want: -525},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseCents(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromCentsRoundTrip(t *testing.T) {
	cents, err := money.ToCents(decimal.RequireFromString("1234.56"))
	assert.NoError(t, err)
	assert.Equal(t, int64(123456), cents)
	assert.Equal(t, "1234.56", money.FromCents(cents).String())
}

// A float passed through multiplication by 100 can land on 54.99999...; the
// decimal path must not.
func TestToCentsNoFloatDrift(t *testing.T) {
	cents, err := money.ToCents(decimal.RequireFromString("0.55"))
	assert.NoError(t, err)
	assert.Equal(t, int64(55), cents)
}
