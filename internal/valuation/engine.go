package valuation

import (
	"errors"
	"math"

	"SatoshiSim/internal/model"
)

// ErrNonPositivePrice is returned when a valuation would divide by a price
// that is zero or negative. The table invariants should make this impossible,
// but Inf/NaN must never escape to callers.
var ErrNonPositivePrice = errors.New("valuation: non-positive price")

// UnitsAcquired returns how many units of the asset a fixed fiat amount buys
// at the given price, after converting fiat through the exchange rate.
func UnitsAcquired(fiatAmount, exchangeRate, price float64) (float64, error) {
	if exchangeRate <= 0 {
		return 0, errors.New("valuation: non-positive exchange rate")
	}
	if price <= 0 {
		return 0, ErrNonPositivePrice
	}
	return (fiatAmount / exchangeRate) / price, nil
}

// CurrentValue marks the acquired units to the live price.
func CurrentValue(units, livePrice float64) float64 {
	return units * livePrice
}

// OpportunityDelta is the nominal gain or loss versus simply holding the
// converted fiat amount.
func OpportunityDelta(currentValue, fiatAmount, exchangeRate float64) float64 {
	return currentValue - fiatAmount/exchangeRate
}

// Purchasable is how many more units of an item the remaining assets can
// still cover, net of what is already in the cart. Never negative.
func Purchasable(remaining, unitPrice float64, inCart int) int {
	if remaining <= 0 || unitPrice <= 0 {
		return 0
	}
	n := int(math.Floor(remaining/unitPrice)) - inCart
	if n < 0 {
		return 0
	}
	return n
}

// PriceLookup resolves a calendar year to a price.
type PriceLookup func(year int) float64

// Scenario fixes the "what if" parameters: an invested fiat amount and the
// rate converting it into the asset's pricing currency.
type Scenario struct {
	FiatAmount   float64
	ExchangeRate float64
}

// Evaluate recomputes the valuation for a year from scratch. The engine keeps
// no state; cost is a handful of multiplications.
func (s Scenario) Evaluate(year int, priceForYear PriceLookup, livePrice float64) (model.Valuation, error) {
	historical := priceForYear(year)
	units, err := UnitsAcquired(s.FiatAmount, s.ExchangeRate, historical)
	if err != nil {
		return model.Valuation{}, err
	}
	value := CurrentValue(units, livePrice)
	return model.Valuation{
		Year:            year,
		HistoricalPrice: historical,
		BTCAmount:       units,
		CurrentValue:    value,
		Delta:           OpportunityDelta(value, s.FiatAmount, s.ExchangeRate),
	}, nil
}
