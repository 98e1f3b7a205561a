package ports

import (
	"goassay/domain/comparison"
)

// ReportWriter exports a finished comparison for the presentation boundary.
type ReportWriter interface {
	WriteComparison(path string, result *comparison.Result) error
}
