package normalize

// fieldLabels maps well-known extracted keys to their display labels, in
// presentation order. Unknown keys follow, sorted, labeled by their raw key.
var fieldLabels = []struct {
	key   string
	label string
}{
	{"sku_name", "Resource Name"},
	{"hotel_name", "Hotel Name"},
	{"activity_name", "Activity Name"},
	{"restaurant_name", "Restaurant Name"},
	{"itinerary_name", "Itinerary Name"},
	{"attraction_name", "Attraction Name"},
	{"guide_name", "Guide Name"},
	{"destination_country", "Destination Country"},
	{"destination_city", "Destination City"},
	{"address", "Address"},
	{"room_type_name", "Room Type"},
	{"bed_type", "Bed Type"},
	{"car_type", "Vehicle Type"},
	{"seats", "Capacity"},
	{"ticket_type", "Ticket Type"},
	{"language", "Language"},
	{"languages", "Languages"},
	{"cost_price", "Cost Price"},
	{"sell_price", "Sell Price"},
	{"daily_cost_price", "Daily Cost Price"},
	{"daily_sell_price", "Daily Sell Price"},
	{"per_person_price", "Per-Person Price"},
	{"adult_price", "Adult Price"},
	{"child_price", "Child Price"},
	{"days", "Days"},
	{"nights", "Nights"},
	{"supplier_name", "Supplier"},
}

// DisplayFields builds the ordered review/edit projection of a raw field
// map: labeled keys first in presentation order, remaining keys sorted.
// Fields whose value renders empty are dropped.
func DisplayFields(fields map[string]interface{}, evidence map[string]string) []DisplayField {
	if len(fields) == 0 {
		return nil
	}

	seen := map[string]bool{}
	out := make([]DisplayField, 0, len(fields))

	appendField := func(key, label string) {
		v, ok := fields[key]
		if !ok {
			return
		}
		seen[key] = true
		value := renderValue(v)
		if value == "" {
			return
		}
		_, hasEvidence := evidence[key]
		out = append(out, DisplayField{
			Key:         key,
			Label:       label,
			Value:       value,
			HasEvidence: hasEvidence,
		})
	}

	for _, entry := range fieldLabels {
		appendField(entry.key, entry.label)
	}
	for _, key := range sortedKeys(fields) {
		if !seen[key] {
			appendField(key, key)
		}
	}

	return out
}
