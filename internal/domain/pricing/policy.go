// Package pricing implements the fee and tax calculator for booking
// settlement. All functions are pure: they derive monetary amounts from a
// base rental price and a set of policy rates, with no I/O and no state.
//
// Amounts are whole rupiah stored as int64. Rate multiplication is performed
// with exact decimals and rounded half away from zero to the nearest rupiah,
// applied uniformly across tax, fee, and refund calculations.
package pricing

import "github.com/shopspring/decimal"

// Policy holds the settlement rates applied to booking financials. The zero
// value is not usable; construct with DefaultPolicy or from configuration.
type Policy struct {
	TaxRate                  decimal.Decimal // charged on top of the base price (PPN/PB1)
	PlatformFeeRate          decimal.Decimal // absorbed from the owner's share of the base price
	OwnerFaultDeductionRate  decimal.Decimal // withheld from the refund when the owner is at fault
	TenantFaultDeductionRate decimal.Decimal // withheld from the refund when the tenant is at fault
}

// DefaultPolicy returns the marketplace's standing commercial terms:
// 11% tax, 3.5% platform fee, 3.5%/15% checkout deductions.
func DefaultPolicy() Policy {
	return Policy{
		TaxRate:                  decimal.RequireFromString("0.11"),
		PlatformFeeRate:          decimal.RequireFromString("0.035"),
		OwnerFaultDeductionRate:  decimal.RequireFromString("0.035"),
		TenantFaultDeductionRate: decimal.RequireFromString("0.15"),
	}
}

// share computes amount*rate rounded to the nearest whole rupiah,
// half away from zero.
func share(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}

// Tax returns the tax amount charged on top of the base price.
// The caller is responsible for validating basePrice; behavior on negative
// input is undefined.
func (p Policy) Tax(basePrice int64) int64 {
	return share(basePrice, p.TaxRate)
}

// PlatformFee returns the platform's cut of the base price.
func (p Policy) PlatformFee(basePrice int64) int64 {
	return share(basePrice, p.PlatformFeeRate)
}

// TotalPrice returns the tenant-facing total: base price plus tax. The
// platform fee is absorbed from the owner's share, never added on top.
func (p Policy) TotalPrice(basePrice int64) int64 {
	return basePrice + p.Tax(basePrice)
}

// OwnerNetPayout returns the amount disbursed to the property owner:
// base price minus the platform fee.
func (p Policy) OwnerNetPayout(basePrice int64) int64 {
	return basePrice - p.PlatformFee(basePrice)
}

// RefundForOwnerFault returns the tenant refund when the owner is at fault:
// the full total minus the platform's standard fee percentage.
func (p Policy) RefundForOwnerFault(totalPrice int64) int64 {
	return totalPrice - share(totalPrice, p.OwnerFaultDeductionRate)
}

// RefundForTenantFault returns the tenant refund when the tenant is at
// fault; a larger penalty is withheld.
func (p Policy) RefundForTenantFault(totalPrice int64) int64 {
	return totalPrice - share(totalPrice, p.TenantFaultDeductionRate)
}
