package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"goassay/adapters/costing"
	"goassay/adapters/excel"
	"goassay/app"
	"goassay/domain/comparison"
	"goassay/ports"
)

func main() {
	var (
		file   = flag.String("file", "", "experiment file (.csv or .xlsx)")
		volume = flag.Int("volume", 1000, "expected sample volume for equipment amortization")
		out    = flag.String("out", "", "optional path for an xlsx report")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	reader := excel.NewDataReader()
	report, err := reader.Read(*file)
	if err != nil {
		log.Fatal("Failed to read experiment file: ", err)
	}
	for _, skipped := range report.Skipped {
		log.Printf("row %d skipped: %s", skipped.Row, skipped.Reason)
	}

	inputs, err := buildInputs(report, costing.NewBuiltinCatalog())
	if err != nil {
		log.Fatal(err)
	}

	service := app.NewComparisonService(app.EngineConfig{})
	result, err := service.Compare(context.Background(), app.CompareRequest{
		Inputs:         inputs,
		ExpectedVolume: *volume,
	})
	if err != nil {
		log.Fatal("Comparison failed: ", err)
	}

	printRanking(result)

	if *out != "" {
		if err := excel.NewReportWriter().WriteComparison(*out, result); err != nil {
			log.Fatal("Failed to write report: ", err)
		}
		fmt.Println("Report written to", *out)
	}
}

// buildInputs collapses the file onto one comparison input per technique,
// resolving cost models from the built-in catalog. When a technique appears
// more than once the first experiment wins: the CLI compares techniques, not
// replicate runs.
func buildInputs(report *ports.ImportReport, catalog ports.TechniqueCatalog) ([]comparison.TechniqueInput, error) {
	var inputs []comparison.TechniqueInput
	seen := make(map[string]bool)
	for _, exp := range report.Experiments {
		key := exp.Technique.String()
		if seen[key] {
			log.Printf("technique %s already included, skipping experiment %q", key, exp.Name)
			continue
		}
		seen[key] = true

		model, err := catalog.Model(exp.Technique)
		if err != nil {
			return nil, fmt.Errorf("no cost model for technique %s: %w", exp.Technique, err)
		}
		inputs = append(inputs, comparison.TechniqueInput{
			TechniqueID: exp.Technique,
			Counts:      exp.Counts,
			CostModel:   model,
		})
	}
	return inputs, nil
}

func printRanking(result *comparison.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTECHNIQUE\tCOMPOSITE\tCOST/SAMPLE\tACCURACY\tKAPPA\tAGREEMENT\tWARNINGS")
	for _, outcome := range result.Outcomes {
		kappa, band := "n/a", outcome.AgreementErr
		if outcome.Agreement != nil {
			kappa = fmt.Sprintf("%.3f", outcome.Agreement.Kappa)
			band = string(outcome.Agreement.Interpretation)
		}
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.2f\t%s\t%s\t%s\t%d\n",
			outcome.Rank, outcome.TechniqueID,
			outcome.Effectiveness.CompositeScore,
			outcome.Effectiveness.CostPerSample,
			outcome.Stats.Accuracy.String(),
			kappa, band, len(outcome.Warnings))
	}
	w.Flush()

	fmt.Printf("\nFingerprint: %s\n", result.Fingerprint)
	if best := result.Best(); best != nil {
		fmt.Printf("Best technique: %s\n", best.TechniqueID)
	}
}
