// Package export writes scan results to spreadsheet files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/ats-scanner/internal/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SummarySheet = "Summary"
	RankedSheet  = "Ranked Resumes"
	DetailsSheet = "Details"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// scoreBand maps a match score to its label and fill colour.
func scoreBand(score int) (label, color string) {
	switch {
	case score >= 80:
		return "Strong (80-100)", "C6EFCE"
	case score >= 60:
		return "Good (60-79)", "FFEB9C"
	case score >= 40:
		return "Fair (40-59)", "FFC7CE"
	default:
		return "Weak (<40)", "FF9999"
	}
}

// ToExcel writes scans, in the order given, to an .xlsx workbook at outputPath.
// The extension is appended when missing; the final path is returned.
func ToExcel(scans []types.ResumeScan, jobSource string, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for _, name := range []string{RankedSheet, DetailsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := writeSummary(f, scans, jobSource); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRanked(f, scans); err != nil {
		return "", fmt.Errorf("failed to create ranked sheet: %w", err)
	}
	if err := writeDetails(f, scans); err != nil {
		return "", fmt.Errorf("failed to create details sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save Excel file %s: %w", outputPath, err)
	}
	return outputPath, nil
}

func score(scan types.ResumeScan) int {
	if scan.Result == nil {
		return 0
	}
	return scan.Result.MatchScore
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
}

// setRow writes values left to right starting at column A of row.
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, scans []types.ResumeScan, jobSource string) error {
	sheet := SummarySheet
	_ = f.SetColWidth(sheet, "A", "A", 25)
	_ = f.SetColWidth(sheet, "B", "B", 50)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := setRow(f, sheet, 1, "ATS Resume Scan Report"); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", "B1", titleStyle)
	_ = f.MergeCell(sheet, "A1", "B1")

	rows := [][]any{
		{"Job Description:", jobSource},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Resumes Scanned:", len(scans)},
	}

	if len(scans) > 0 {
		bands := map[string]int{}
		total, best, worst := 0, score(scans[0]), score(scans[0])
		for _, s := range scans {
			sc := score(s)
			label, _ := scoreBand(sc)
			bands[label]++
			total += sc
			best = max(best, sc)
			worst = min(worst, sc)
		}
		rows = append(rows,
			[]any{"Average Score:", fmt.Sprintf("%.2f", float64(total)/float64(len(scans)))},
			[]any{"Highest Score:", best},
			[]any{"Lowest Score:", worst},
		)
		for _, sc := range []int{80, 60, 40, 0} {
			label, _ := scoreBand(sc)
			rows = append(rows, []any{label, bands[label]})
		}
	}

	for i, values := range rows {
		if err := setRow(f, sheet, i+3, values...); err != nil {
			return err
		}
	}
	return nil
}

func writeRanked(f *excelize.File, scans []types.ResumeScan) error {
	sheet := RankedSheet
	widths := map[string]float64{"A": 8, "B": 40, "C": 12, "D": 12, "E": 12, "F": 12, "G": 50}
	for col, w := range widths {
		_ = f.SetColWidth(sheet, col, col, w)
	}

	hdr, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Rank", "Resume", "Score", "Matched", "Missing", "Weak", "Missing Skills"); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", "G1", hdr)

	styles := map[string]int{}
	for i, s := range scans {
		row := i + 2
		result := s.Result
		if result == nil {
			result = &types.AnalysisResult{}
		}
		err := setRow(f, sheet, row,
			i+1,
			s.Source,
			result.MatchScore,
			len(result.MatchedSkills),
			len(result.MissingSkills),
			len(result.WeakSkills),
			strings.Join(result.MissingSkills, ", "),
		)
		if err != nil {
			return err
		}

		_, color := scoreBand(result.MatchScore)
		style, ok := styles[color]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
				Border: thinBorder,
			})
			if err != nil {
				return err
			}
			styles[color] = style
		}
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), style)
	}

	if len(scans) > 0 {
		_ = f.AutoFilter(sheet, fmt.Sprintf("A1:G%d", len(scans)+1), []excelize.AutoFilterOptions{})
	}
	return freezeHeader(f, sheet)
}

func writeDetails(f *excelize.File, scans []types.ResumeScan) error {
	sheet := DetailsSheet
	_ = f.SetColWidth(sheet, "A", "A", 40)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "C", 70)

	hdr, err := headerStyle(f)
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	if err := setRow(f, sheet, 1, "Resume", "Category", "Value"); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", "C1", hdr)

	row := 2
	for _, s := range scans {
		if s.Result == nil {
			continue
		}
		r := s.Result
		details := []struct {
			category string
			value    string
		}{
			{"Matched Skills", strings.Join(r.MatchedSkills, ", ")},
			{"Missing Skills", strings.Join(r.MissingSkills, ", ")},
			{"Weak Skills", strings.Join(r.WeakSkills, ", ")},
			{"Experience", r.Experience},
			{"Education", r.Education},
			{"Certifications", r.Certifications},
			{"Recommendations", strings.Join(r.Recommendations, "\n")},
		}
		for _, d := range details {
			if err := setRow(f, sheet, row, s.Source, d.category, d.value); err != nil {
				return err
			}
			_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), wrap)
			row++
		}
	}
	return freezeHeader(f, sheet)
}

func freezeHeader(f *excelize.File, sheet string) error {
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
