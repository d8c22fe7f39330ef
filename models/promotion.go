package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a time-bounded discounted price for a single product.
// A product carries at most one promotion.
type Promotion struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       uint            `gorm:"uniqueIndex;not null" json:"product_id"`
	DiscountedPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discounted_price"`
	StartDate       time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time       `gorm:"type:date;not null" json:"end_date"`
}

// ActiveOn reports whether the promotion window covers the given day.
// Both ends are inclusive and the comparison is date-granular.
func (p *Promotion) ActiveOn(day time.Time) bool {
	d := truncateToDate(day)
	return !d.Before(truncateToDate(p.StartDate)) && !d.After(truncateToDate(p.EndDate))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
