package normalize

import (
	"fmt"

	"tripdesk/internal/domain"
)

// CategoryAttributes projects the raw field map onto the fixed key set for
// one category. Missing or malformed source values are omitted entirely,
// never rendered as empty or zero.
func CategoryAttributes(category domain.SkuCategory, fields map[string]interface{}) map[string]string {
	attrs := map[string]string{}
	put := func(key, value string) {
		if value != "" {
			attrs[key] = value
		}
	}

	switch category {
	case domain.CategoryHotel:
		room := firstObject(fields["room_types"])
		put("bed_type", str(room, "bed_type"))
		if area, ok := fieldNum(room, "room_area"); ok {
			put("room_area", formatNum(area)+"m²")
		}
		if breakfast, ok := room["include_breakfast"].(bool); ok {
			if breakfast {
				put("breakfast", "Breakfast included")
			} else {
				put("breakfast", "No breakfast")
			}
		}
	case domain.CategoryCar:
		put("vehicle_type", str(fields, "car_type"))
		if seats, ok := fieldNum(fields, "seats"); ok {
			put("capacity", formatNum(seats))
		}
		put("duration", hoursLabel(fields))
		put("language", renderValue(fields["driver_language"]))
	case domain.CategoryActivity:
		if label := hoursLabel(fields); label != "" {
			put("duration", label)
		} else {
			put("duration", daysLabel(fields))
		}
		put("language", renderValue(fields["language_service"]))
		put("meeting_point", str(fields, "meeting_point"))
		put("depart_city", str(fields, "depart_city"))
		put("arrive_city", str(fields, "arrive_city"))
		put("group_size", groupSizeLabel(fields))
		put("adult_price", formatPrice(fields["adult_price"]))
		put("child_price", formatPrice(fields["child_price"]))
	case domain.CategoryGuide:
		put("duration", hoursLabel(fields))
		put("language", renderValue(fields["languages"]))
	case domain.CategoryRestaurant:
		put("duration", renderValue(fields["booking_time_slots"]))
	case domain.CategoryItinerary:
		put("duration", daysLabel(fields))
		put("depart_city", str(fields, "depart_city"))
		put("arrive_city", str(fields, "arrive_city"))
		put("group_size", groupSizeLabel(fields))
		put("itinerary_type", str(fields, "itinerary_type"))
		put("adult_price", formatPrice(fields["adult_price"]))
		put("child_price", formatPrice(fields["child_price"]))
	case domain.CategoryTicket:
		if days, ok := fieldNum(fields, "valid_days"); ok {
			put("duration", formatNum(days)+" days valid")
		}
	}

	return attrs
}

// hoursLabel renders service_hours or duration_hours as "Nh".
func hoursLabel(fields map[string]interface{}) string {
	if hours, ok := firstNum(fields, "service_hours", "duration_hours"); ok {
		return formatNum(hours) + "h"
	}
	return ""
}

// daysLabel renders days/nights as "N days" or "N days M nights".
func daysLabel(fields map[string]interface{}) string {
	days, ok := fieldNum(fields, "days")
	if !ok {
		return ""
	}
	if nights, ok := fieldNum(fields, "nights"); ok {
		return fmt.Sprintf("%s days %s nights", formatNum(days), formatNum(nights))
	}
	return formatNum(days) + " days"
}

// groupSizeLabel renders min_pax/max_pax as "min-max pax". Both bounds must
// be present, matching the source behavior of showing nothing otherwise.
func groupSizeLabel(fields map[string]interface{}) string {
	minPax, minOK := fieldNum(fields, "min_pax")
	maxPax, maxOK := fieldNum(fields, "max_pax")
	if !minOK || !maxOK {
		return ""
	}
	return fmt.Sprintf("%s-%s pax", formatNum(minPax), formatNum(maxPax))
}
