package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUserID      = "user_id"
	FieldTranID      = "tran_id"
	FieldCategoryID  = "cat_id"
	FieldReportTitle = "report_title"
	FieldFilename    = "filename"
	FieldDBPath      = "db_path"
	FieldAttempt     = "attempt"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentShell   = "shell"
	ComponentStorage = "storage"
	ComponentReport  = "report"
	ComponentConfig  = "config"
)
