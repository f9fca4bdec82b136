// Package constants provides shared constants used throughout the floataudit codebase.
// This includes default paths, audit thresholds, file permissions, and other
// configuration values that should be consistent across the application.
package constants

import "time"

// Path constants
const (
	// DefaultRootFile is the conventional root auxiliary file produced by the audit build
	DefaultRootFile = "thesis-audit.aux"

	// DefaultReportPath is where the TSV report is written
	DefaultReportPath = "tmp/float_audit_report.tsv"

	// ConfigFileName is the base name of the optional config file (without extension)
	ConfigFileName = ".floataudit"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "FLOATAUDIT"
)

// Audit constants
const (
	// OutlierThreshold is the minimum absolute page delta for a float to count as an outlier
	OutlierThreshold = 2

	// OutlierDisplayLimit is the maximum number of outliers printed to the console
	OutlierDisplayLimit = 80

	// FigurePrefix is the label namespace for figures
	FigurePrefix = "fig:"

	// TablePrefix is the label namespace for tables
	TablePrefix = "tab:"

	// DefaultEncoding is the charset used to decode auxiliary files
	DefaultEncoding = "utf-8"
)

// DefaultFloatPrefixes returns the label prefixes that identify floats.
func DefaultFloatPrefixes() []string {
	return []string{FigurePrefix, TablePrefix}
}

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// WatchDebounce is how long the watcher waits for a burst of writes to settle
const WatchDebounce = 250 * time.Millisecond
