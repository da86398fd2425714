package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tripdesk/internal/domain"
	"tripdesk/internal/export"
	"tripdesk/internal/normalize"
)

func TestWriteWorkbook(t *testing.T) {
	task := &domain.ImportTask{
		ID:     "task-1",
		Status: domain.TaskStatusParsed,
	}
	sku := &normalize.NormalizedSku{
		Category:   domain.CategoryHotel,
		Pricing:    normalize.Pricing{CostPrice: 500, SellPrice: 500},
		Attributes: map[string]string{"bed_type": "King"},
		DisplayFields: []normalize.DisplayField{
			{Key: "hotel_name", Label: "Hotel Name", Value: "Grand Mercure", HasEvidence: true},
			{Key: "address", Label: "Address", Value: "1-1 Kawaramachi"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, task, sku))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Import")
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	cells := map[string]string{}
	for _, row := range rows {
		if len(row) >= 2 {
			cells[row[0]] = row[1]
		}
	}

	assert.Equal(t, "task-1", cells["Task ID"])
	assert.Equal(t, "parsed", cells["Status"])
	assert.Equal(t, "hotel", cells["Category"])
	assert.Equal(t, "500", cells["Cost Price"])
	assert.Equal(t, "King", cells["bed_type"])
	assert.Equal(t, "Grand Mercure", cells["Hotel Name"])
	assert.Equal(t, "1-1 Kawaramachi", cells["Address"])
}

func TestBuildFilename(t *testing.T) {
	got := export.BuildFilename("abc-123")
	assert.Regexp(t, `^abc-123_\d{4}-\d{2}-\d{2}\.xlsx$`, got)

	sanitized := export.BuildFilename(`../evil name!`)
	assert.NotContains(t, sanitized, "/")
	assert.NotContains(t, sanitized, "!")
	assert.NotContains(t, sanitized, " ")
}
