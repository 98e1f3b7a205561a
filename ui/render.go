package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"goassay/domain/assay"
	"goassay/domain/comparison"
)

// BuildMarkdownReport renders a ranked comparison as a markdown narrative.
// All rounding happens here, at the presentation boundary.
func BuildMarkdownReport(result *comparison.Result) string {
	var b strings.Builder

	b.WriteString("# Technique Comparison Report\n\n")
	fmt.Fprintf(&b, "Computed at %s. Fingerprint `%s`.\n\n", result.ComputedAt.Time().Format("2006-01-02 15:04"), result.Fingerprint)
	fmt.Fprintf(&b, "Ranking weights: cost %.2f, accuracy %.2f.\n\n", result.Weights.Cost, result.Weights.Accuracy)

	b.WriteString("## Ranking\n\n")
	b.WriteString("| Rank | Technique | Composite | Cost/Sample | Accuracy | Kappa | Agreement |\n")
	b.WriteString("|------|-----------|-----------|-------------|----------|-------|----------|\n")
	for _, outcome := range result.Outcomes {
		kappa, band := "n/a", outcome.AgreementErr
		if outcome.Agreement != nil {
			kappa = fmt.Sprintf("%.3f", outcome.Agreement.Kappa)
			band = string(outcome.Agreement.Interpretation)
		}
		fmt.Fprintf(&b, "| %d | %s | %.4f | %.2f | %s | %s | %s |\n",
			outcome.Rank, outcome.TechniqueID,
			outcome.Effectiveness.CompositeScore,
			outcome.Effectiveness.CostPerSample,
			formatRatio(outcome.Stats.Accuracy),
			kappa, band)
	}
	b.WriteString("\n")

	for _, outcome := range result.Outcomes {
		fmt.Fprintf(&b, "## %s\n\n", outcome.TechniqueID)
		s := outcome.Stats
		fmt.Fprintf(&b, "- Samples: %d\n", s.TotalSamples)
		fmt.Fprintf(&b, "- Sensitivity: %s %s\n", formatRatio(s.Sensitivity), formatInterval(s.Sensitivity, s.SensitivityCI))
		fmt.Fprintf(&b, "- Specificity: %s %s\n", formatRatio(s.Specificity), formatInterval(s.Specificity, s.SpecificityCI))
		fmt.Fprintf(&b, "- PPV: %s, NPV: %s\n", formatRatio(s.PPV), formatRatio(s.NPV))
		fmt.Fprintf(&b, "- Accuracy: %s %s\n", formatRatio(s.Accuracy), formatInterval(s.Accuracy, s.AccuracyCI))
		fmt.Fprintf(&b, "- Cost per correct result: %s\n", formatCost(outcome.Effectiveness.CostPerCorrectResult))
		fmt.Fprintf(&b, "- Expected misclassification cost/sample: %.2f\n", outcome.Effectiveness.Misclassification.TotalErrorCost)

		if len(outcome.Warnings) > 0 {
			b.WriteString("\nData quality warnings:\n\n")
			for _, w := range outcome.Warnings {
				fmt.Fprintf(&b, "- **%s** (%s): %s\n", w.Code, w.Severity, w.Message)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts a markdown report to HTML.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func formatRatio(r assay.Ratio) string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.1f%%", r.Value*100)
}

func formatInterval(r assay.Ratio, ci assay.Interval) string {
	if !r.Defined {
		return ""
	}
	return fmt.Sprintf("(CI %.1f%%-%.1f%%)", ci.Lower*100, ci.Upper*100)
}

func formatCost(r assay.Ratio) string {
	if !r.Defined {
		return "undefined (zero accuracy)"
	}
	return fmt.Sprintf("%.2f", r.Value)
}
