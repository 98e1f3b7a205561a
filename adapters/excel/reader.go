package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"goassay/domain/assay"
	"goassay/domain/core"
	"goassay/domain/cost"
	apperrors "goassay/internal/errors"
	"goassay/ports"
)

// Column-name aliases accepted in uploaded files, keyed by canonical name.
var columnAliases = map[string][]string{
	"name":           {"name", "experiment_name", "test_name", "study_name"},
	"description":    {"description", "desc", "notes", "comments"},
	"technique":      {"technique", "method", "amplification_method", "technology"},
	"true_positive":  {"true_positive", "tp", "true_pos", "correct_positive"},
	"false_positive": {"false_positive", "fp", "false_pos", "incorrect_positive"},
	"true_negative":  {"true_negative", "tn", "true_neg", "correct_negative"},
	"false_negative": {"false_negative", "fn", "false_neg", "incorrect_negative"},
}

var requiredColumns = []string{"name", "technique", "true_positive", "false_positive", "true_negative", "false_negative"}

// DataReader parses experiment files (xlsx or csv) into experiments.
// Malformed rows are skipped with a recorded reason; only an unreadable
// file or an unusable header aborts the read.
type DataReader struct{}

// NewDataReader creates a new data reader
func NewDataReader() ports.ExperimentReader {
	return &DataReader{}
}

// Read parses the file at path into an import report.
func (r *DataReader) Read(path string) (*ports.ImportReport, error) {
	start := time.Now()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.FileError(fmt.Sprintf("experiment file not found: %s", path), nil)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx", ".xls":
		rows, err = readExcelRows(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .csv or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("experiment file must have a header row and at least one data row")
	}

	report, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	log.Printf("[DataReader] Parsed %s in %.2fms: %d experiments, %d skipped",
		path, float64(time.Since(start).Nanoseconds())/1e6, len(report.Experiments), len(report.Skipped))
	return report, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.FileError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.FileError("failed to read CSV file", err)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.FileError("failed to open Excel file", err)
	}
	defer f.Close()

	// Prefer an "Experiments" sheet (the template layout), fall back to the
	// first sheet.
	sheet := "Experiments"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.FileError(fmt.Sprintf("failed to read sheet %s", sheet), err)
	}
	return rows, nil
}

// mapHeader resolves the header row into canonical column positions.
func mapHeader(header []string) (map[string]int, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
	}

	columns := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			for i, h := range normalized {
				if h == alias {
					columns[canonical] = i
					break
				}
			}
			if _, ok := columns[canonical]; ok {
				break
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseRows(rows [][]string) (*ports.ImportReport, error) {
	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	report := &ports.ImportReport{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		exp, reason := parseExperimentRow(row, columns)
		if reason != "" {
			report.Skipped = append(report.Skipped, ports.SkippedRow{Row: rowNum, Reason: reason})
			continue
		}
		report.Experiments = append(report.Experiments, exp)
	}

	if len(report.Experiments) == 0 {
		return nil, fmt.Errorf("no valid experiment data found in file")
	}
	return report, nil
}

func parseExperimentRow(row []string, columns map[string]int) (*assay.Experiment, string) {
	name := strings.TrimSpace(cell(row, columns["name"]))
	if name == "" {
		return nil, "experiment name is empty"
	}

	technique := canonicalTechnique(strings.TrimSpace(cell(row, columns["technique"])))
	if technique == "" {
		return nil, "technique is empty"
	}

	var counts assay.ConfusionCounts
	fields := []struct {
		column string
		target *int
	}{
		{"true_positive", &counts.TruePositive},
		{"false_positive", &counts.FalsePositive},
		{"true_negative", &counts.TrueNegative},
		{"false_negative", &counts.FalseNegative},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(cell(row, columns[f.column])))
		if err != nil {
			return nil, fmt.Sprintf("%s is not an integer", f.column)
		}
		*f.target = v
	}

	if counts.TruePositive < 0 || counts.FalsePositive < 0 || counts.TrueNegative < 0 || counts.FalseNegative < 0 {
		return nil, "counts must be non-negative"
	}
	if counts.Total() == 0 {
		return nil, "all counts are zero"
	}

	exp, err := assay.NewExperiment(name, technique, counts)
	if err != nil {
		return nil, err.Error()
	}
	if idx, ok := columns["description"]; ok {
		exp.Description = strings.TrimSpace(cell(row, idx))
	}
	return exp, ""
}

// canonicalTechnique maps a case-insensitive technique name onto its catalog
// spelling. Techniques outside the catalog pass through unchanged; they just
// need caller-supplied cost models.
func canonicalTechnique(name string) core.TechniqueID {
	for _, id := range cost.CatalogTechniques() {
		if strings.EqualFold(name, id.String()) {
			return id
		}
	}
	return core.TechniqueID(name)
}

// cell reads a column; short rows read as empty cells.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
