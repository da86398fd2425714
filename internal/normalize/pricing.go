package normalize

import (
	"tripdesk/internal/domain"
)

// DerivePricing resolves the canonical {cost, sell} pair for a category via
// its deterministic fallback chain. The first coercible candidate wins;
// non-finite or missing values fall through, and an empty chain yields 0.
// Sell defaults to cost whenever its own chain comes up empty.
func DerivePricing(category domain.SkuCategory, fields map[string]interface{}) Pricing {
	var cost, sell float64
	var sellOK bool

	switch category {
	case domain.CategoryHotel:
		slot := firstPricingSlot(fields)
		if f, ok := fieldNum(slot, "daily_price"); ok {
			cost, sell, sellOK = f, f, true
		} else if f, ok := firstNum(fields, "daily_cost_price", "cost_price"); ok {
			cost = f
		}
		if !sellOK {
			sell, sellOK = firstNum(fields, "daily_sell_price", "sell_price")
		}
	case domain.CategoryCar, domain.CategoryTicket:
		cost, _ = fieldNum(fields, "cost_price")
		sell, sellOK = fieldNum(fields, "sell_price")
	case domain.CategoryRestaurant:
		cost, _ = fieldNum(fields, "per_person_price")
	case domain.CategoryGuide:
		cost, _ = fieldNum(fields, "daily_cost_price")
		sell, sellOK = fieldNum(fields, "daily_sell_price")
	case domain.CategoryItinerary:
		cost, _ = fieldNum(fields, "adult_price")
	default: // activity and generic fallback
		cost, _ = firstNum(fields, "cost_price", "daily_cost_price")
		sell, sellOK = fieldNum(fields, "sell_price")
	}

	if !sellOK {
		sell = cost
	}
	return Pricing{CostPrice: clampPrice(cost), SellPrice: clampPrice(sell)}
}

// firstPricingSlot returns room_types[0].pricing[0] for hotel fields, or nil.
func firstPricingSlot(fields map[string]interface{}) map[string]interface{} {
	room := firstObject(fields["room_types"])
	if room == nil {
		return nil
	}
	return firstObject(room["pricing"])
}

// firstObject returns the first element of an object array, or nil.
func firstObject(v interface{}) map[string]interface{} {
	items, ok := v.([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}
	obj, ok := items[0].(map[string]interface{})
	if !ok {
		return nil
	}
	return obj
}

// clampPrice enforces the non-negative price invariant.
func clampPrice(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
