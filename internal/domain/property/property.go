// Package property holds the kos property and room catalog entities. The
// settlement engine treats the catalog as read-only reference data: room
// prices are snapshotted into bookings at creation time and never re-read.
package property

import (
	"time"

	"github.com/google/uuid"
)

// Category restricts who may rent rooms at a property.
type Category string

const (
	CategoryMale   Category = "Pria"
	CategoryFemale Category = "Perempuan"
	CategoryMixed  Category = "Campur"
)

// BillingPeriod is the rental cadence of a room type. It determines how the
// checkout date is derived from the check-in date at booking creation.
type BillingPeriod string

const (
	BillingDaily   BillingPeriod = "Harian"
	BillingWeekly  BillingPeriod = "Mingguan"
	BillingMonthly BillingPeriod = "Bulanan"
	BillingYearly  BillingPeriod = "Tahunan"
)

// Valid reports whether the billing period is one of the known cadences.
func (p BillingPeriod) Valid() bool {
	switch p {
	case BillingDaily, BillingWeekly, BillingMonthly, BillingYearly:
		return true
	}
	return false
}

// Next returns the end of one billing period starting at the given date.
// Monthly and yearly periods follow calendar arithmetic, so a January 31st
// check-in on a monthly room normalizes per time.AddDate rules.
func (p BillingPeriod) Next(from time.Time) time.Time {
	switch p {
	case BillingDaily:
		return from.AddDate(0, 0, 1)
	case BillingWeekly:
		return from.AddDate(0, 0, 7)
	case BillingYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// Property represents a kos listing owned by a landlord account.
type Property struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	Category   Category  `json:"category"`
	Province   string    `json:"province"`
	District   string    `json:"district"`
	Address    string    `json:"address"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Room represents one bookable room type at a property. Price is whole
// rupiah per billing period.
type Room struct {
	ID            uuid.UUID     `json:"id"`
	PropertyID    uuid.UUID     `json:"property_id"`
	TypeLabel     string        `json:"type_label"` // e.g. Standard, Superior, VIP
	Price         int64         `json:"price"`
	BillingPeriod BillingPeriod `json:"billing_period"`
	Stock         int           `json:"stock"`
}

// HasStock reports whether at least one unit of the room type is available.
func (r *Room) HasStock() bool {
	return r.Stock > 0
}
