package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldKey        = "key"
	FieldCollection = "collection"
	FieldRecordID   = "record_id"
	FieldCount      = "count"
	FieldBytes      = "bytes"
	FieldBackend    = "backend"
	FieldPath       = "path"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldCycle      = "cycle"
	FieldNextBill   = "next_billing_date"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentStorage  = "storage"
	ComponentCache    = "cache"
	ComponentBackend  = "backend"
	ComponentLedger   = "ledger"
	ComponentRenewal  = "renewal"
	ComponentSettings = "settings"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpRead    = "read"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpReplace = "replace"
	OpClear   = "clear"
	OpRenew   = "renew"
	OpStartup = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeDecode        = "decode_error"
	ErrorTypeNotFound      = "not_found_error"
)

// FieldErrorType tags a log record with one of the ErrorType values.
const FieldErrorType = "error_type"

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category field
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithCollection adds the storage key and collection name
func (f LogFields) WithCollection(name, key string) LogFields {
	f[FieldCollection] = name
	f[FieldKey] = key
	return f
}

// WithRecord adds the id of the record being changed
func (f LogFields) WithRecord(id string) LogFields {
	f[FieldRecordID] = id
	return f
}

// WithCount adds a record count
func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
