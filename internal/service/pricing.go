package service

import (
	"time"

	"smartparking/internal/db"
)

const (
	bikeHourlyRate    = 10.0
	carHourlyRate     = 20.0
	truckHourlyRate   = 30.0
	weekendMultiplier = 1.2
	loyaltyMultiplier = 0.9
)

// Quote is the priced outcome of a stay between an entry time and a
// reference time.
type Quote struct {
	Amount          float64
	Hours           int64
	Weekend         bool
	DiscountApplied bool
}

// PricingEngine computes fees from vehicle type, duration, calendar day and
// loyalty eligibility. It is pure: no clock, no storage.
type PricingEngine struct{}

func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

// Quote bills whole hours rounded up with a one hour minimum, then applies
// the weekend multiplier (reference day Sat/Sun) and the loyalty discount,
// strictly in that order.
func (p *PricingEngine) Quote(vt db.VehicleType, entryTime, referenceTime time.Time, loyaltyEligible bool) Quote {
	hours := billableHours(entryTime, referenceTime)
	amount := float64(hours) * hourlyRate(vt)

	weekend := isWeekend(referenceTime)
	if weekend {
		amount *= weekendMultiplier
	}
	if loyaltyEligible {
		amount *= loyaltyMultiplier
	}

	return Quote{
		Amount:          amount,
		Hours:           hours,
		Weekend:         weekend,
		DiscountApplied: loyaltyEligible,
	}
}

// billableHours rounds the stay up to whole hours and never bills less
// than one: a 30 minute stay is 1 hour, a 61 minute stay is 2.
func billableHours(entry, reference time.Time) int64 {
	d := reference.Sub(entry)
	if d <= 0 {
		return 1
	}
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}

func hourlyRate(vt db.VehicleType) float64 {
	switch vt {
	case db.VehicleBike:
		return bikeHourlyRate
	case db.VehicleTruck:
		return truckHourlyRate
	default:
		return carHourlyRate
	}
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
