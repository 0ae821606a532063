package cmd

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
	"github.com/ITS-ERP/qms-risk-backend/internal/risk"
)

func TestRenderReport(t *testing.T) {
	color.NoColor = true

	rate := 78.5
	rows := []models.RiskReportRow{
		{
			RiskName:              "Penerimaan barang reject",
			RiskRate:              &rate,
			Priority:              risk.PriorityHigh,
			ForecastPrediction:    "Akan Meningkat",
			MitigationEffectivity: 40.0,
		},
		{
			RiskName:              "Keterlambatan transfer barang",
			Priority:              risk.Unavailable,
			ForecastPrediction:    risk.Unavailable,
			MitigationEffectivity: risk.InsufficientData,
		},
	}

	var buf bytes.Buffer
	renderReport(&buf, rows)
	out := buf.String()

	assert.Contains(t, out, "RISK")
	assert.Contains(t, out, "Penerimaan barang reject")
	assert.Contains(t, out, "78.50")
	assert.Contains(t, out, "Tinggi")
	assert.Contains(t, out, "40.00")
	assert.Contains(t, out, "Akan Meningkat")
	assert.Contains(t, out, "insufficient data")
	assert.Contains(t, out, "2 risk(s)")
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "-", formatRate(nil))
	v := 33.333
	assert.Equal(t, "33.33", formatRate(&v))
}

func TestFormatMitigation(t *testing.T) {
	assert.Equal(t, "75.00", formatMitigation(75.0))
	assert.Equal(t, risk.InsufficientData, formatMitigation(risk.InsufficientData))
}

func TestPriorityColor(t *testing.T) {
	assert.Equal(t, highColor, priorityColor(risk.PriorityHigh))
	assert.Equal(t, mediumColor, priorityColor(risk.PriorityMedium))
	assert.Equal(t, lowColor, priorityColor(risk.PriorityLow))
	assert.Equal(t, dimColor, priorityColor(risk.Unavailable))
}
