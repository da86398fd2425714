package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripdesk/internal/domain"
	"tripdesk/internal/normalize"
)

func TestCategoryAttributes_Hotel(t *testing.T) {
	fields := map[string]interface{}{
		"room_types": []interface{}{
			map[string]interface{}{
				"bed_type":          "King",
				"room_area":         float64(42),
				"include_breakfast": true,
			},
		},
	}

	attrs := normalize.CategoryAttributes(domain.CategoryHotel, fields)
	assert.Equal(t, "King", attrs["bed_type"])
	assert.Equal(t, "42m²", attrs["room_area"])
	assert.Equal(t, "Breakfast included", attrs["breakfast"])
}

func TestCategoryAttributes_HotelNoBreakfast(t *testing.T) {
	fields := map[string]interface{}{
		"room_types": []interface{}{
			map[string]interface{}{"include_breakfast": false},
		},
	}

	attrs := normalize.CategoryAttributes(domain.CategoryHotel, fields)
	assert.Equal(t, "No breakfast", attrs["breakfast"])
	assert.NotContains(t, attrs, "bed_type")
	assert.NotContains(t, attrs, "room_area")
}

func TestCategoryAttributes_Car(t *testing.T) {
	fields := map[string]interface{}{
		"car_type":        "Alphard",
		"seats":           float64(7),
		"service_hours":   float64(10),
		"driver_language": []interface{}{"Chinese", "English"},
	}

	attrs := normalize.CategoryAttributes(domain.CategoryCar, fields)
	assert.Equal(t, "Alphard", attrs["vehicle_type"])
	assert.Equal(t, "7", attrs["capacity"])
	assert.Equal(t, "10h", attrs["duration"])
	assert.Equal(t, "Chinese / English", attrs["language"])
}

func TestCategoryAttributes_ActivityHoursPreferredOverDays(t *testing.T) {
	fields := map[string]interface{}{
		"duration_hours": float64(3),
		"days":           float64(1),
		"meeting_point":  "Shibuya station exit 8",
		"min_pax":        float64(2),
		"max_pax":        float64(10),
		"adult_price":    float64(450),
	}

	attrs := normalize.CategoryAttributes(domain.CategoryActivity, fields)
	assert.Equal(t, "3h", attrs["duration"])
	assert.Equal(t, "Shibuya station exit 8", attrs["meeting_point"])
	assert.Equal(t, "2-10 pax", attrs["group_size"])
	assert.Equal(t, "¥450", attrs["adult_price"])
}

func TestCategoryAttributes_GroupSizeRequiresBothBounds(t *testing.T) {
	fields := map[string]interface{}{"min_pax": float64(2)}

	attrs := normalize.CategoryAttributes(domain.CategoryActivity, fields)
	assert.NotContains(t, attrs, "group_size")
}

func TestCategoryAttributes_Itinerary(t *testing.T) {
	fields := map[string]interface{}{
		"days":           float64(5),
		"nights":         float64(4),
		"depart_city":    "Osaka",
		"arrive_city":    "Tokyo",
		"itinerary_type": "private",
		"adult_price":    float64(1299),
		"child_price":    float64(899),
	}

	attrs := normalize.CategoryAttributes(domain.CategoryItinerary, fields)
	assert.Equal(t, "5 days 4 nights", attrs["duration"])
	assert.Equal(t, "Osaka", attrs["depart_city"])
	assert.Equal(t, "Tokyo", attrs["arrive_city"])
	assert.Equal(t, "private", attrs["itinerary_type"])
	assert.Equal(t, "¥1299", attrs["adult_price"])
	assert.Equal(t, "¥899", attrs["child_price"])
}

func TestCategoryAttributes_Guide(t *testing.T) {
	fields := map[string]interface{}{
		"service_hours": float64(8),
		"languages":     []interface{}{"Japanese", "Mandarin"},
	}

	attrs := normalize.CategoryAttributes(domain.CategoryGuide, fields)
	assert.Equal(t, "8h", attrs["duration"])
	assert.Equal(t, "Japanese / Mandarin", attrs["language"])
}

func TestCategoryAttributes_TicketValidDays(t *testing.T) {
	fields := map[string]interface{}{"valid_days": float64(2)}

	attrs := normalize.CategoryAttributes(domain.CategoryTicket, fields)
	assert.Equal(t, "2 days valid", attrs["duration"])
}

func TestCategoryAttributes_EmptyValuesOmitted(t *testing.T) {
	fields := map[string]interface{}{
		"car_type": "",
		"seats":    "not a number",
	}

	attrs := normalize.CategoryAttributes(domain.CategoryCar, fields)
	assert.Empty(t, attrs)
}
