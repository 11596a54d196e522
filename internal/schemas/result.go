package schemas

import (
	"encoding/json"
	"fmt"
	"os"

	schemafiles "github.com/jonathan/ats-scanner/schemas"
	"github.com/jonathan/ats-scanner/internal/types"
)

// ValidateResult checks an analysis result against the embedded result schema.
func ValidateResult(result *types.AnalysisResult) error {
	if result == nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "result is nil"}}}
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return ValidateJSONString(schemafiles.AnalysisResult, string(data))
}

// ValidateReport checks a scan report document. The envelope is validated
// against the report schema and every scan's result against the result schema;
// result errors are reported with a scans[i].result prefix.
func ValidateReport(jsonContent []byte) error {
	if err := ValidateJSONString(schemafiles.ScanReport, string(jsonContent)); err != nil {
		return err
	}

	var report struct {
		Scans []struct {
			Result json.RawMessage `json:"result"`
		} `json:"scans"`
	}
	if err := json.Unmarshal(jsonContent, &report); err != nil {
		return fmt.Errorf("failed to parse scan report: %w", err)
	}

	combined := &ValidationError{}
	for i, scan := range report.Scans {
		err := ValidateJSONString(schemafiles.AnalysisResult, string(scan.Result))
		if err == nil {
			continue
		}
		validationErr, ok := err.(*ValidationError)
		if !ok {
			return err
		}
		for _, fe := range validationErr.Errors {
			combined.Errors = append(combined.Errors, FieldError{
				Field:   fmt.Sprintf("scans[%d].result.%s", i, fe.Field),
				Message: fe.Message,
			})
		}
	}
	if len(combined.Errors) > 0 {
		return combined
	}
	return nil
}

// ValidateFile validates a JSON file written by the scanner. Documents with a
// top-level "scans" array are treated as scan reports, anything else as a
// single analysis result.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if _, ok := probe["scans"]; ok {
		return ValidateReport(data)
	}
	return ValidateJSONString(schemafiles.AnalysisResult, string(data))
}
