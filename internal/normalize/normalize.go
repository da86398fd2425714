// Package normalize turns the heterogeneous field maps produced by the AI
// extraction backend into canonical pricing, category-specific attribute
// projections, and ordered display fields. Every function here is pure and
// total: malformed or missing input degrades to the absent branch of its
// fallback chain, never to an error.
package normalize

import (
	"tripdesk/internal/domain"
)

// Pricing is the canonical {cost, sell} pair for a catalog record.
type Pricing struct {
	CostPrice float64 `json:"cost_price"`
	SellPrice float64 `json:"sell_price"`
}

// DisplayField is one row of the review/edit projection of a raw field map.
type DisplayField struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	HasEvidence bool   `json:"has_evidence"`
}

// NormalizedSku is the derived, stateless projection of one parsed task.
// It owns nothing and is recomputed on every call.
type NormalizedSku struct {
	Category      domain.SkuCategory `json:"category"`
	Pricing       Pricing            `json:"pricing"`
	Attributes    map[string]string  `json:"attributes"`
	DisplayFields []DisplayField     `json:"display_fields"`
}

// Normalize derives the full projection for one category and raw field map.
// An unknown or empty category is auto-detected from the fields; when the
// detector does not clear its threshold the declared category is retained
// and the generic fallback rules apply.
func Normalize(category domain.SkuCategory, fields map[string]interface{}, evidence map[string]string) *NormalizedSku {
	category = DetectCategory(category, fields)

	return &NormalizedSku{
		Category:      category,
		Pricing:       DerivePricing(category, fields),
		Attributes:    CategoryAttributes(category, fields),
		DisplayFields: DisplayFields(fields, evidence),
	}
}
