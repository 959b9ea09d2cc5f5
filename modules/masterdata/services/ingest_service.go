package services

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/pkg/excel"
)

// hierarchyColumns is the fixed spreadsheet contract: four columns in
// this order, first row is the header.
var hierarchyColumns = []string{"Industry Segment", "Domain Group", "Category", "Sub-Category"}

const noDataMessage = "No data found in Excel file"

// IngestOutcome is everything one file upload produced: the per-row
// view for the UI, the nested map for the merge engine and the
// aggregate counts.
type IngestOutcome struct {
	Rows      []hierarchy.ParsedRow      `json:"rows"`
	Hierarchy hierarchy.Map              `json:"hierarchy"`
	Result    hierarchy.ProcessingResult `json:"result"`
}

// IngestService turns uploaded spreadsheets into hierarchy maps.
type IngestService struct {
	log *logrus.Logger
}

func NewIngestService(log *logrus.Logger) *IngestService {
	return &IngestService{log: log}
}

// Ingest reads and parses one uploaded file. An unparseable file is a
// hard failure; a file that parses but holds no usable rows comes back
// as a soft failure inside Result.Errors with an empty hierarchy.
func (s *IngestService) Ingest(r io.Reader, filename string) (*IngestOutcome, error) {
	rows, err := excel.ReadRows(r, filename)
	if err != nil {
		return nil, err
	}
	extracted := ExtractRows(rows)
	outcome := ParseRows(extracted)
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"file":       filename,
			"totalRows":  outcome.Result.TotalRows,
			"validRows":  outcome.Result.ValidRows,
			"rowErrors":  len(outcome.Result.Errors),
			"rowWarning": len(outcome.Result.Warnings),
		}).Info("ingest: spreadsheet processed")
	}
	return outcome, nil
}

// ExtractedRow is one surviving row of the raw grid plus its position
// in the source sheet, so messages can point at the sheet row even
// after noise rows are dropped.
type ExtractedRow struct {
	Cells []string
	// RowNumber is the 1-based position among the source data rows;
	// zero for the header.
	RowNumber int
}

// ExtractRows normalizes the raw grid: every row padded to the four
// target columns, and only the header plus rows with at least two
// populated columns survive. Rows with fewer populated cells are noise
// from ragged source sheets and are dropped before parsing.
func ExtractRows(rows [][]string) []ExtractedRow {
	extracted := make([]ExtractedRow, 0, len(rows))
	for i, row := range rows {
		padded := make([]string, len(hierarchyColumns))
		copy(padded, row)

		if i == 0 {
			extracted = append(extracted, ExtractedRow{Cells: padded})
			continue
		}
		populated := 0
		for _, cell := range padded {
			if cell != "" {
				populated++
			}
		}
		if populated >= 2 {
			extracted = append(extracted, ExtractedRow{Cells: padded, RowNumber: i})
		}
	}
	return extracted
}

// ParseRows maps extracted rows onto the hierarchy. A row needs segment
// and group to contribute; category and sub-category are recommended,
// so their absence is a warning rather than an error. Row numbers in
// messages are the source sheet positions carried by extraction.
func ParseRows(rows []ExtractedRow) *IngestOutcome {
	outcome := &IngestOutcome{
		Hierarchy: hierarchy.NewMap(),
		Result: hierarchy.ProcessingResult{
			Errors:   []string{},
			Warnings: []string{},
		},
	}

	if len(rows) <= 1 {
		outcome.Result.Errors = append(outcome.Result.Errors, noDataMessage)
		return outcome
	}

	partial := 0
	for _, row := range rows[1:] {
		parsed := hierarchy.ParsedRow{
			IndustrySegment: row.Cells[0],
			DomainGroup:     row.Cells[1],
			Category:        row.Cells[2],
			SubCategory:     row.Cells[3],
			RowNumber:       row.RowNumber,
		}
		outcome.Result.TotalRows++

		if !parsed.HasMinimumData() {
			parsed.Errors = append(parsed.Errors,
				fmt.Sprintf("Row %d: Industry Segment and Domain Group are required", parsed.RowNumber))
			outcome.Result.Errors = append(outcome.Result.Errors, parsed.Errors...)
			outcome.Rows = append(outcome.Rows, parsed)
			continue
		}

		if parsed.Category == "" || parsed.SubCategory == "" {
			partial++
		} else {
			parsed.IsValid = true
			outcome.Result.ValidRows++
		}

		outcome.Hierarchy.Add(parsed.IndustrySegment, parsed.DomainGroup, parsed.Category, parsed.SubCategory)
		outcome.Rows = append(outcome.Rows, parsed)
	}

	if partial > 0 {
		outcome.Result.Warnings = append(outcome.Result.Warnings,
			fmt.Sprintf("%d row(s) had a Domain Group but no Category or Sub-Category", partial))
	}
	if outcome.Hierarchy.IsEmpty() {
		outcome.Result.Errors = append(outcome.Result.Errors, noDataMessage)
	}
	return outcome
}
