package domain_test

import (
	"testing"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.InvoiceLine
		want  string
	}{
		{
			name:  "no lines yields zero",
			lines: nil,
			want:  "0",
		},
		{
			name: "single line quantity times price",
			lines: []domain.InvoiceLine{
				{Quantity: decimal.NewFromInt(3), Price: decimal.RequireFromString("10.00")},
			},
			want: "30.00",
		},
		{
			name: "multiple lines are summed",
			lines: []domain.InvoiceLine{
				{Quantity: decimal.NewFromInt(2), Price: decimal.RequireFromString("19.99")},
				{Quantity: decimal.NewFromInt(1), Price: decimal.RequireFromString("0.02")},
			},
			want: "40.00",
		},
		{
			name: "fractional quantities",
			lines: []domain.InvoiceLine{
				{Quantity: decimal.RequireFromString("1.5"), Price: decimal.RequireFromString("7.00")},
			},
			want: "10.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.CalculateTotal(tt.lines)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.String(), tt.want)
		})
	}
}

func TestCalculateTotal_Idempotent(t *testing.T) {
	lines := []domain.InvoiceLine{
		{Quantity: decimal.NewFromInt(4), Price: decimal.RequireFromString("2.25")},
		{Quantity: decimal.NewFromInt(1), Price: decimal.RequireFromString("91.00")},
	}

	first := domain.CalculateTotal(lines)
	second := domain.CalculateTotal(lines)
	assert.True(t, first.Equal(second))
}

func TestCalculatePurchaseTotal(t *testing.T) {
	lines := []domain.PurchaseLine{
		{Quantity: decimal.NewFromInt(10), Price: decimal.RequireFromString("5.50")},
		{Quantity: decimal.NewFromInt(2), Price: decimal.RequireFromString("12.25")},
	}

	got := domain.CalculatePurchaseTotal(lines)
	assert.True(t, got.Equal(decimal.RequireFromString("79.50")))
}
