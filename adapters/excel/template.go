package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteTemplate generates an upload template workbook with an Experiments
// sheet of example rows and an Instructions sheet describing each column.
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Experiments"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	experimentRows := [][]interface{}{
		{"name", "description", "technique", "true_positive", "false_positive", "true_negative", "false_negative"},
		{"Experiment_1", "qPCR validation study", "qPCR", 85, 3, 92, 5},
		{"Experiment_2", "LAMP comparison test", "LAMP", 78, 5, 88, 9},
		{"Experiment_3", "RPA field trial", "RPA", 82, 4, 89, 7},
	}
	for i, row := range experimentRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Experiments", cell, &row); err != nil {
			return fmt.Errorf("failed to write template row: %w", err)
		}
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		return fmt.Errorf("failed to create instructions sheet: %w", err)
	}
	instructionRows := [][]interface{}{
		{"Column", "Description", "Required"},
		{"name", "Unique name for the experiment", "Yes"},
		{"description", "Optional description of the experiment", "No"},
		{"technique", "Amplification technique (e.g. qPCR, LAMP, RPA, NASBA)", "Yes"},
		{"true_positive", "Number of true positive results", "Yes"},
		{"false_positive", "Number of false positive results", "Yes"},
		{"true_negative", "Number of true negative results", "Yes"},
		{"false_negative", "Number of false negative results", "Yes"},
	}
	for i, row := range instructionRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Instructions", cell, &row); err != nil {
			return fmt.Errorf("failed to write instructions row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}
