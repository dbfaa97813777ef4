package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_StandardBreakdown(t *testing.T) {
	p := DefaultPolicy()

	testCases := []struct {
		name           string
		basePrice      int64
		expectedTax    int64
		expectedFee    int64
		expectedTotal  int64
		expectedPayout int64
	}{
		{"MonthlyRoom", 2_500_000, 275_000, 87_500, 2_775_000, 2_412_500},
		{"SmallDaily", 100_000, 11_000, 3_500, 111_000, 96_500},
		{"RoundsHalfUp", 99, 11, 3, 110, 96}, // 99*0.11=10.89 -> 11, 99*0.035=3.465 -> 3
		{"Zero", 0, 0, 0, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedTax, p.Tax(tc.basePrice))
			assert.Equal(t, tc.expectedFee, p.PlatformFee(tc.basePrice))
			assert.Equal(t, tc.expectedTotal, p.TotalPrice(tc.basePrice))
			assert.Equal(t, tc.expectedPayout, p.OwnerNetPayout(tc.basePrice))
		})
	}
}

func TestPolicy_ClosedBookInvariant(t *testing.T) {
	// The three disbursement legs (owner payout, platform fee, tax) must
	// always sum back to the tenant-paid total, regardless of rounding.
	p := DefaultPolicy()

	for _, basePrice := range []int64{1, 99, 12_345, 100_000, 2_500_000, 7_777_777} {
		legs := p.OwnerNetPayout(basePrice) + p.PlatformFee(basePrice) + p.Tax(basePrice)
		assert.Equal(t, p.TotalPrice(basePrice), legs, "base price %d", basePrice)
	}
}

func TestPolicy_Refunds(t *testing.T) {
	p := DefaultPolicy()

	// 1,000,000 total: owner fault withholds 3.5%, tenant fault withholds 15%.
	assert.Equal(t, int64(965_000), p.RefundForOwnerFault(1_000_000))
	assert.Equal(t, int64(850_000), p.RefundForTenantFault(1_000_000))

	// Refund plus deduction always reconstructs the total.
	for _, total := range []int64{111, 12_345, 2_775_000} {
		ownerDeduction := total - p.RefundForOwnerFault(total)
		tenantDeduction := total - p.RefundForTenantFault(total)
		assert.Equal(t, share(total, p.OwnerFaultDeductionRate), ownerDeduction)
		assert.Equal(t, share(total, p.TenantFaultDeductionRate), tenantDeduction)
	}
}

func TestPolicy_CustomRates(t *testing.T) {
	p := Policy{
		TaxRate:                  decimal.RequireFromString("0.10"),
		PlatformFeeRate:          decimal.RequireFromString("0.05"),
		OwnerFaultDeductionRate:  decimal.RequireFromString("0.05"),
		TenantFaultDeductionRate: decimal.RequireFromString("0.20"),
	}

	assert.Equal(t, int64(100_000), p.Tax(1_000_000))
	assert.Equal(t, int64(50_000), p.PlatformFee(1_000_000))
	assert.Equal(t, int64(1_100_000), p.TotalPrice(1_000_000))
	assert.Equal(t, int64(950_000), p.OwnerNetPayout(1_000_000))
	assert.Equal(t, int64(880_000), p.RefundForTenantFault(1_100_000))
}
