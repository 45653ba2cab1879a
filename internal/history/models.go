package history

import "time"

const SchemaVersion = 1

// Snapshot records the outcome of one crate scan.
type Snapshot struct {
	SchemaVersion   int           `json:"schema_version"`
	Timestamp       time.Time     `json:"timestamp"`
	FileCount       int           `json:"file_count"`
	ClassCount      int           `json:"class_count"`
	EnumCount       int           `json:"enum_count"`
	MethodsCount    int           `json:"methods_count"`
	FunctionCount   int           `json:"function_count"`
	DiagnosticCount int           `json:"diagnostic_count"`
	Duration        time.Duration `json:"duration"`
}
