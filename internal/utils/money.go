package utils

import "github.com/shopspring/decimal"

// FormatRupee renders an amount the way receipts and prompts show it:
// "₹50" for whole amounts, "₹12.50" otherwise.
func FormatRupee(amount decimal.Decimal) string {
	return "₹" + amount.String()
}

// FormatRupeeFixed always shows two decimals ("₹1234.00").
func FormatRupeeFixed(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}
