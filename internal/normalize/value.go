package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// listSeparator joins plain scalar arrays for display.
const listSeparator = " / "

// num coerces an extracted value to a finite float64. Extractors emit
// numbers as float64, json.Number, or numeric strings depending on version.
func num(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return num(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return num(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return num(f)
	default:
		return 0, false
	}
}

// fieldNum looks up key in fields and coerces it.
func fieldNum(fields map[string]interface{}, key string) (float64, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, false
	}
	return num(v)
}

// firstNum returns the first key that coerces to a number.
func firstNum(fields map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		if f, ok := fieldNum(fields, key); ok {
			return f, true
		}
	}
	return 0, false
}

// str returns a non-empty string value for key, or "".
func str(fields map[string]interface{}, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// formatNum renders a float without a trailing ".0" tail.
func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// renderValue turns one extracted value into its display string. Returns ""
// for values that should be omitted entirely.
//
// Arrays of {date, price}-shaped objects become newline-joined
// "date: ¥price" lines; other object arrays fall back to a JSON dump;
// scalar arrays join with the list separator; maps pretty-print.
func renderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if f, ok := num(val); ok {
			return formatNum(f)
		}
		return ""
	case json.Number:
		return val.String()
	case []interface{}:
		return renderArray(val)
	case map[string]interface{}:
		return renderObject(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func renderArray(items []interface{}) string {
	if len(items) == 0 {
		return ""
	}

	if lines, ok := renderDatePriceLines(items); ok {
		return lines
	}

	if _, isObject := items[0].(map[string]interface{}); isObject {
		dump, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return ""
		}
		return string(dump)
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := renderValue(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, listSeparator)
}

// renderDatePriceLines handles the common calendar-pricing shape: an array
// of objects each carrying a date and a price.
func renderDatePriceLines(items []interface{}) (string, bool) {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return "", false
		}
		date := str(obj, "date")
		price, priceOK := fieldNum(obj, "price")
		if date == "" || !priceOK {
			return "", false
		}
		lines = append(lines, fmt.Sprintf("%s: ¥%s", date, formatNum(price)))
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

func renderObject(obj map[string]interface{}) string {
	if len(obj) == 0 {
		return ""
	}
	dump, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return ""
	}
	return string(dump)
}

// formatPrice renders an extracted price value as "¥N", digging into the
// first element of calendar arrays and into nested price objects. Returns ""
// when nothing numeric is found.
func formatPrice(v interface{}) string {
	if v == nil {
		return ""
	}

	if f, ok := num(v); ok {
		return "¥" + formatNum(f)
	}

	priceKeys := []string{"price", "daily_price", "adult_price", "cost_price"}

	switch val := v.(type) {
	case []interface{}:
		if len(val) == 0 {
			return ""
		}
		return formatPrice(val[0])
	case map[string]interface{}:
		if f, ok := firstNum(val, priceKeys...); ok {
			return "¥" + formatNum(f)
		}
	}
	return ""
}

// sortedKeys returns map keys in lexical order.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
