// Package constants provides shared constants used throughout the venuemap codebase.
// This includes file permissions, default locations, file name suffixes, and
// limits that should be consistent between the library and the CLI.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Path constants
const (
	// DefaultTemplatesPath is the conventional location of the canonical template store
	DefaultTemplatesPath = "templates.yaml"

	// DefaultLogDir is where report logs are written when no directory is given
	DefaultLogDir = "."

	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".venuemap"
)

// Suffix constants
const (
	// BackupSuffix is appended to the store path for the pre-overwrite snapshot
	BackupSuffix = ".bak"

	// LockSuffix is appended to the store path for the advisory lock file
	LockSuffix = ".lock"

	// ConflictLogSuffix is appended to the input base name for the conflict report
	ConflictLogSuffix = ".conflicts.txt"

	// MissingLogSuffix is appended to the input base name for the missing-template report
	MissingLogSuffix = ".missing_templates.txt"
)

// Formatting constants
const (
	// PatchFieldWidth is the column the field name is padded to in inserted lines
	PatchFieldWidth = 12

	// NoRows is written in a report that has no rows
	NoRows = "(none)"

	// UnknownYear is shown for entries without a year
	UnknownYear = "N/A"
)
