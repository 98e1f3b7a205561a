package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"goassay/domain/assay"
	"goassay/domain/comparison"
	"goassay/ports"
)

// ReportWriter exports a finished comparison as a workbook: a Ranking sheet,
// a Diagnostics sheet, and a Costs sheet. Values are rounded here, at the
// presentation boundary; the engine keeps full precision.
type ReportWriter struct{}

// NewReportWriter creates a new comparison report writer
func NewReportWriter() ports.ReportWriter {
	return &ReportWriter{}
}

// WriteComparison writes the report workbook to path.
func (w *ReportWriter) WriteComparison(path string, result *comparison.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Ranking"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRankingSheet(f, result); err != nil {
		return err
	}
	if err := writeDiagnosticsSheet(f, result); err != nil {
		return err
	}
	if err := writeCostsSheet(f, result); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeRankingSheet(f *excelize.File, result *comparison.Result) error {
	rows := [][]interface{}{
		{"rank", "technique", "composite_score", "cost_per_sample", "accuracy", "kappa", "agreement", "warnings"},
	}
	for _, outcome := range result.Outcomes {
		kappa, band := "", ""
		if outcome.Agreement != nil {
			kappa = fmt.Sprintf("%.4f", outcome.Agreement.Kappa)
			band = string(outcome.Agreement.Interpretation)
		} else {
			band = outcome.AgreementErr
		}
		rows = append(rows, []interface{}{
			outcome.Rank,
			outcome.TechniqueID.String(),
			fmt.Sprintf("%.4f", outcome.Effectiveness.CompositeScore),
			fmt.Sprintf("%.2f", outcome.Effectiveness.CostPerSample),
			ratioCell(outcome.Stats.Accuracy),
			kappa,
			band,
			len(outcome.Warnings),
		})
	}
	return writeRows(f, "Ranking", rows)
}

func writeDiagnosticsSheet(f *excelize.File, result *comparison.Result) error {
	if _, err := f.NewSheet("Diagnostics"); err != nil {
		return fmt.Errorf("failed to create diagnostics sheet: %w", err)
	}
	rows := [][]interface{}{
		{"technique", "n", "sensitivity", "sensitivity_ci", "specificity", "specificity_ci",
			"ppv", "npv", "accuracy", "accuracy_ci", "prevalence", "f1", "mcc"},
	}
	for _, outcome := range result.Outcomes {
		s := outcome.Stats
		mcc := ""
		if s.MCCDefined {
			mcc = fmt.Sprintf("%.4f", s.MCC)
		}
		rows = append(rows, []interface{}{
			outcome.TechniqueID.String(),
			s.TotalSamples,
			ratioCell(s.Sensitivity),
			intervalCell(s.Sensitivity, s.SensitivityCI),
			ratioCell(s.Specificity),
			intervalCell(s.Specificity, s.SpecificityCI),
			ratioCell(s.PPV),
			ratioCell(s.NPV),
			ratioCell(s.Accuracy),
			intervalCell(s.Accuracy, s.AccuracyCI),
			ratioCell(s.Prevalence),
			ratioCell(s.F1Score),
			mcc,
		})
	}
	return writeRows(f, "Diagnostics", rows)
}

func writeCostsSheet(f *excelize.File, result *comparison.Result) error {
	if _, err := f.NewSheet("Costs"); err != nil {
		return fmt.Errorf("failed to create costs sheet: %w", err)
	}
	rows := [][]interface{}{
		{"technique", "cost_per_sample", "equipment", "reagents", "labor", "maintenance", "power",
			"cost_per_correct", "expected_error_cost"},
	}
	for _, outcome := range result.Outcomes {
		e := outcome.Effectiveness
		rows = append(rows, []interface{}{
			outcome.TechniqueID.String(),
			fmt.Sprintf("%.2f", e.CostPerSample),
			fmt.Sprintf("%.2f", e.CostBreakdown.Equipment),
			fmt.Sprintf("%.2f", e.CostBreakdown.Reagents),
			fmt.Sprintf("%.2f", e.CostBreakdown.Labor),
			fmt.Sprintf("%.2f", e.CostBreakdown.Maintenance),
			fmt.Sprintf("%.2f", e.CostBreakdown.Power),
			costPerCorrectCell(e.CostPerCorrectResult),
			fmt.Sprintf("%.2f", e.Misclassification.TotalErrorCost),
		})
	}
	return writeRows(f, "Costs", rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", sheet, err)
		}
	}
	return nil
}

// ratioCell keeps the undefined sentinel visible in exports instead of
// rendering a misleading zero.
func ratioCell(r assay.Ratio) string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", r.Value)
}

func intervalCell(r assay.Ratio, ci assay.Interval) string {
	if !r.Defined {
		return ""
	}
	return fmt.Sprintf("[%.4f, %.4f]", ci.Lower, ci.Upper)
}

func costPerCorrectCell(r assay.Ratio) string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.2f", r.Value)
}
