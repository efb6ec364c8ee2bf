package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldChanged    = "changed"

	// Configuration fields.
	FieldLanguage = "language"
	FieldWidth    = "width"
	FieldWrite    = "write"
	FieldCheck    = "check"
	FieldBackup   = "backup"
	FieldJobs     = "jobs"
	FieldFormat   = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Language fields.
	FieldExtensions = "extensions"
	FieldAliases    = "aliases"
)
