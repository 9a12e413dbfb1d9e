package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"1180.00", "One Thousand One Hundred Eighty Rupees Only"},
		{"0", "Zero Rupees Only"},
		{"1", "One Rupees Only"},
		{"250.45", "Two Hundred Fifty Rupees and Forty Five Paise Only"},
		{"19", "Nineteen Rupees Only"},
		{"105", "One Hundred Five Rupees Only"},
		{"100000", "One Lakh Rupees Only"},
		{"2550000", "Twenty Five Lakh Fifty Thousand Rupees Only"},
		{"10000000", "One Crore Rupees Only"},
		{"12345678.90", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees and Ninety Paise Only"},
		{"-500", "Minus Five Hundred Rupees Only"},
		{"0.05", "Zero Rupees and Five Paise Only"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AmountInWords(d(tc.amount)), "amount %s", tc.amount)
	}
}
