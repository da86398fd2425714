// Package export renders a parsed import task as an xlsx workbook for
// offline review and supplier hand-off.
package export

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tripdesk/internal/domain"
	"tripdesk/internal/normalize"
)

const sheetName = "Import"

// WriteWorkbook writes one task and its normalized projection as a single
// worksheet: a summary block, the category attribute table, then the ordered
// display fields with their evidence flags.
func WriteWorkbook(w io.Writer, task *domain.ImportTask, sku *normalize.NormalizedSku) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "C", 44); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	row := 1
	set := func(col string, v interface{}) {
		_ = f.SetCellValue(sheetName, col+strconv.Itoa(row), v)
	}

	set("A", "Task ID")
	set("B", task.ID)
	row++
	set("A", "Status")
	set("B", string(task.Status))
	row++
	set("A", "Category")
	set("B", string(sku.Category))
	row++
	set("A", "Cost Price")
	set("B", sku.Pricing.CostPrice)
	row++
	set("A", "Sell Price")
	set("B", sku.Pricing.SellPrice)
	row++
	set("A", "Exported At")
	set("B", time.Now().Format(time.RFC3339))
	row += 2

	if len(sku.Attributes) > 0 {
		set("A", "Attribute")
		set("B", "Value")
		row++
		for _, key := range sortedAttrKeys(sku.Attributes) {
			set("A", key)
			set("B", sku.Attributes[key])
			row++
		}
		row++
	}

	if len(sku.DisplayFields) > 0 {
		set("A", "Field")
		set("B", "Value")
		set("C", "Evidence")
		row++
		for _, field := range sku.DisplayFields {
			set("A", field.Label)
			set("B", field.Value)
			if field.HasEvidence {
				set("C", "Yes")
			} else {
				set("C", "")
			}
			row++
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func sortedAttrKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// BuildFilename returns a sanitized attachment filename for the export.
// Format: {sanitized_task_id}_{YYYY-MM-DD}.xlsx
func BuildFilename(taskID string) string {
	s := nonAlphanumeric.ReplaceAllString(taskID, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return fmt.Sprintf("%s_%s.xlsx", s, time.Now().Format("2006-01-02"))
}
