package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goassay/app"
	"goassay/domain/assay"
	"goassay/domain/comparison"
	"goassay/domain/cost"
)

func rankedResult(t *testing.T) *comparison.Result {
	t.Helper()
	svc := app.NewComparisonService(app.EngineConfig{})

	inputs := []comparison.TechniqueInput{
		{
			TechniqueID: "qPCR",
			Counts:      assay.ConfusionCounts{TruePositive: 85, FalsePositive: 3, TrueNegative: 92, FalseNegative: 5},
			CostModel:   cost.Model{EquipmentCost: 1225000, ReagentCostPerSample: 192.5, LaborCostPerSample: 50, ThroughputPerHour: 96},
		},
		{
			TechniqueID: "LAMP",
			Counts:      assay.ConfusionCounts{TruePositive: 78, FalsePositive: 5, TrueNegative: 88, FalseNegative: 9},
			CostModel:   cost.Model{EquipmentCost: 87500, ReagentCostPerSample: 105, LaborCostPerSample: 18.75, ThroughputPerHour: 24},
		},
	}
	result, err := svc.Compare(context.Background(), app.CompareRequest{Inputs: inputs, ExpectedVolume: 1000})
	require.NoError(t, err)
	return result
}

func TestBuildMarkdownReport(t *testing.T) {
	result := rankedResult(t)
	md := BuildMarkdownReport(result)

	assert.Contains(t, md, "# Technique Comparison Report")
	assert.Contains(t, md, "## Ranking")
	assert.Contains(t, md, "## qPCR")
	assert.Contains(t, md, "## LAMP")
	assert.Contains(t, md, string(result.Fingerprint))

	// The best technique appears first in the ranking table.
	rankingIdx := strings.Index(md, "| 1 |")
	require.GreaterOrEqual(t, rankingIdx, 0)
	assert.Contains(t, md[rankingIdx:], result.Best().TechniqueID.String())
}

func TestBuildMarkdownReport_UndefinedKappa(t *testing.T) {
	svc := app.NewComparisonService(app.EngineConfig{})

	inputs := []comparison.TechniqueInput{
		{
			TechniqueID: "RPA",
			Counts:      assay.ConfusionCounts{TruePositive: 30},
			CostModel:   cost.Model{ReagentCostPerSample: 400, ThroughputPerHour: 12},
		},
	}
	result, err := svc.Compare(context.Background(), app.CompareRequest{Inputs: inputs, ExpectedVolume: 1000})
	require.NoError(t, err)

	md := BuildMarkdownReport(result)
	assert.Contains(t, md, "n/a")
	assert.Contains(t, md, "Data quality warnings")
}

func TestRenderHTML(t *testing.T) {
	html := string(RenderHTML(BuildMarkdownReport(rankedResult(t))))
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table")
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "94.4%", formatRatio(assay.DefinedRatio(85.0/90.0)))
	assert.Equal(t, "undefined", formatRatio(assay.UndefinedRatio()))
	assert.Equal(t, "", formatInterval(assay.UndefinedRatio(), assay.Interval{}))
	assert.Equal(t, "undefined (zero accuracy)", formatCost(assay.UndefinedRatio()))
	assert.Equal(t, "123.46", formatCost(assay.DefinedRatio(123.456)))
}
