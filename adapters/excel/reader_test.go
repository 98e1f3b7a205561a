package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goassay/domain/core"
)

func TestMapHeader_CanonicalNames(t *testing.T) {
	columns, err := mapHeader([]string{"name", "description", "technique", "true_positive", "false_positive", "true_negative", "false_negative"})
	require.NoError(t, err)
	assert.Equal(t, 0, columns["name"])
	assert.Equal(t, 3, columns["true_positive"])
	assert.Equal(t, 6, columns["false_negative"])
}

func TestMapHeader_Aliases(t *testing.T) {
	// Short aliases, mixed case, spaces.
	columns, err := mapHeader([]string{"Experiment Name", "Method", "TP", "FP", "TN", "FN"})
	require.NoError(t, err)
	assert.Equal(t, 0, columns["name"])
	assert.Equal(t, 1, columns["technique"])
	assert.Equal(t, 2, columns["true_positive"])
	assert.Equal(t, 5, columns["false_negative"])
	_, hasDescription := columns["description"]
	assert.False(t, hasDescription)
}

func TestMapHeader_MissingColumns(t *testing.T) {
	_, err := mapHeader([]string{"name", "technique", "tp", "fp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "true_negative")
	assert.Contains(t, err.Error(), "false_negative")
}

func TestParseRows_SkipReasons(t *testing.T) {
	rows := [][]string{
		{"name", "technique", "tp", "fp", "tn", "fn"},
		{"good", "qPCR", "85", "3", "92", "5"},
		{"", "qPCR", "1", "2", "3", "4"},
		{"no technique", "", "1", "2", "3", "4"},
		{"not a number", "LAMP", "abc", "2", "3", "4"},
		{"negative", "LAMP", "-1", "2", "3", "4"},
		{"all zero", "RPA", "0", "0", "0", "0"},
	}

	report, err := parseRows(rows)
	require.NoError(t, err)

	require.Len(t, report.Experiments, 1)
	assert.Equal(t, "good", report.Experiments[0].Name)
	assert.Equal(t, core.TechniqueID("qPCR"), report.Experiments[0].Technique)

	require.Len(t, report.Skipped, 5)
	assert.Equal(t, 3, report.Skipped[0].Row)
	assert.Contains(t, report.Skipped[0].Reason, "name")
	assert.Contains(t, report.Skipped[1].Reason, "technique")
	assert.Contains(t, report.Skipped[2].Reason, "integer")
	assert.Contains(t, report.Skipped[3].Reason, "non-negative")
	assert.Contains(t, report.Skipped[4].Reason, "zero")
}

func TestParseRows_NoValidRows(t *testing.T) {
	rows := [][]string{
		{"name", "technique", "tp", "fp", "tn", "fn"},
		{"", "qPCR", "1", "2", "3", "4"},
	}
	_, err := parseRows(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid experiment data")
}

func TestParseRows_ShortRows(t *testing.T) {
	// CSV rows can be ragged; missing trailing cells read as empty.
	rows := [][]string{
		{"name", "technique", "tp", "fp", "tn", "fn"},
		{"truncated", "qPCR", "85", "3"},
	}
	report, err := parseRows(rows)
	require.Error(t, err)
	assert.Nil(t, report)
}

func TestCanonicalTechnique(t *testing.T) {
	assert.Equal(t, core.TechniqueID("qPCR"), canonicalTechnique("qpcr"))
	assert.Equal(t, core.TechniqueID("LAMP"), canonicalTechnique("Lamp"))
	assert.Equal(t, core.TechniqueID("NASBA"), canonicalTechnique("nasba"))
	// Unknown techniques pass through unchanged.
	assert.Equal(t, core.TechniqueID("CustomAssay"), canonicalTechnique("CustomAssay"))
}

func TestDataReader_ReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experiments.csv")
	content := "experiment_name,method,tp,fp,tn,fn\n" +
		"qPCR Run,qpcr,85,3,92,5\n" +
		"LAMP Run,lamp,78,5,88,9\n" +
		",lamp,1,1,1,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reader := NewDataReader()
	report, err := reader.Read(path)
	require.NoError(t, err)

	require.Len(t, report.Experiments, 2)
	assert.Equal(t, core.TechniqueID("qPCR"), report.Experiments[0].Technique)
	assert.Equal(t, core.TechniqueID("LAMP"), report.Experiments[1].Technique)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 4, report.Skipped[0].Row)
}

func TestDataReader_ReadTemplateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.xlsx")
	require.NoError(t, WriteTemplate(path))

	reader := NewDataReader()
	report, err := reader.Read(path)
	require.NoError(t, err)

	require.Len(t, report.Experiments, 3)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, "Experiment_1", report.Experiments[0].Name)
	assert.Equal(t, core.TechniqueID("qPCR"), report.Experiments[0].Technique)
	assert.Equal(t, 85, report.Experiments[0].Counts.TruePositive)
}

func TestDataReader_Failures(t *testing.T) {
	reader := NewDataReader()

	_, err := reader.Read("/nonexistent/experiments.csv")
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "experiments.txt")
	require.NoError(t, os.WriteFile(path, []byte("irrelevant"), 0o644))
	_, err = reader.Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("name,technique,tp,fp,tn,fn\n"), 0o644))
	_, err = reader.Read(empty)
	assert.Error(t, err)
}
