// Package schemas embeds the JSON Schemas for the scanner's output documents.
package schemas

import _ "embed"

// AnalysisResult is the schema for a single analysis result.
//
//go:embed analysis_result.schema.json
var AnalysisResult string

// ScanReport is the schema for the document written by the scan command.
//
//go:embed scan_report.schema.json
var ScanReport string
