package normalize

import (
	"tripdesk/internal/domain"
)

// Category detection is pure data plus a pure scoring function: each
// category names its primary identifying field (weighted highest) and a set
// of secondary distinctive fields. A candidate wins only when its score
// clears the threshold and strictly beats every later candidate; otherwise
// the declared category stands.

const (
	primaryWeight   = 3
	secondaryWeight = 1
	// detectThreshold is what a winner must score: the primary field alone,
	// or three secondary fields.
	detectThreshold = 3
)

// categoryWeights maps each category to its distinctive field weights.
var categoryWeights = map[domain.SkuCategory]map[string]int{
	domain.CategoryHotel: {
		"hotel_name":     primaryWeight,
		"room_type_name": secondaryWeight,
		"bed_type":       secondaryWeight,
		"room_types":     secondaryWeight,
		"star_rating":    secondaryWeight,
	},
	domain.CategoryCar: {
		"car_type":        primaryWeight,
		"seats":           secondaryWeight,
		"service_mode":    secondaryWeight,
		"driver_language": secondaryWeight,
		"pickup_location": secondaryWeight,
	},
	domain.CategoryTicket: {
		"attraction_name": primaryWeight,
		"ticket_type":     secondaryWeight,
		"entry_method":    secondaryWeight,
		"valid_days":      secondaryWeight,
		"need_real_name":  secondaryWeight,
	},
	domain.CategoryGuide: {
		"guide_name":     primaryWeight,
		"languages":      secondaryWeight,
		"grade":          secondaryWeight,
		"service_city":   secondaryWeight,
		"expertise_tags": secondaryWeight,
	},
	domain.CategoryRestaurant: {
		"restaurant_name":  primaryWeight,
		"cuisine_type":     secondaryWeight,
		"meal_type":        secondaryWeight,
		"per_person_price": secondaryWeight,
		"set_menu_desc":    secondaryWeight,
	},
	domain.CategoryItinerary: {
		"itinerary_name":  primaryWeight,
		"days":            secondaryWeight,
		"nights":          secondaryWeight,
		"departure_dates": secondaryWeight,
		"day_by_day":      secondaryWeight,
	},
	domain.CategoryActivity: {
		"activity_name":    primaryWeight,
		"duration_hours":   secondaryWeight,
		"meeting_point":    secondaryWeight,
		"difficulty_level": secondaryWeight,
		"start_time_slots": secondaryWeight,
	},
}

// ScoreCategory sums the weights of candidate fields present in the map.
// A field counts when the key exists with a non-nil value.
func ScoreCategory(category domain.SkuCategory, fields map[string]interface{}) int {
	score := 0
	for field, weight := range categoryWeights[category] {
		if v, ok := fields[field]; ok && v != nil {
			score += weight
		}
	}
	return score
}

// DetectCategory scores every candidate and returns the winner when it
// clears the threshold; ties break toward the earlier entry in the fixed
// declaration order. Below threshold the declared category is retained.
func DetectCategory(declared domain.SkuCategory, fields map[string]interface{}) domain.SkuCategory {
	best := declared
	bestScore := 0
	for _, candidate := range domain.Categories {
		if score := ScoreCategory(candidate, fields); score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore < detectThreshold {
		return declared
	}
	return best
}
