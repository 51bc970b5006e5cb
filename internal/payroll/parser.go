package payroll

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tiproom_backend/internal/models"
)

// Parse failures reject the whole submission; a labor report is never
// half-ingested.
var (
	ErrMalformedReport = errors.New("malformed labor report")
	ErrUnknownEmployee = errors.New("labor report references unknown employee")
	ErrEmptyReport     = errors.New("labor report contains no tipped-role rows")
)

// Tipped roles as exported by the POS timekeeping system.
const (
	RoleServer    = "Server"
	RoleBartender = "Bartender"
	RoleSteward   = "Steward"
)

// Column headers of the POS shift export.
const (
	colEmployee  = "Employee"
	colPayrollID = "Payroll Id"
	colRole      = "Role"
	colTimeIn    = "Time In"
	colTimeOut   = "Time Out"
	colTotalPay  = "Total Pay ($)"
)

// ParserConfig selects which report roles participate in the tip pool.
type ParserConfig struct {
	TippedRoles map[string]bool
}

// DefaultParserConfig admits the three roles the house pools tips for.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{TippedRoles: map[string]bool{
		RoleServer:    true,
		RoleBartender: true,
		RoleSteward:   true,
	}}
}

// Roster maps employee ids to registered staff members. Report rows whose
// payroll id is missing from the roster fail the submission.
type Roster map[int64]models.StaffMember

// ParseReport normalizes an uploaded labor report (CSV or XLSX) into one
// LaborRecord per (employee, role). Shift length is the wall clock span from
// Time In to Time Out, wrapping +24h when the shift crosses midnight.
// Multiple rows for the same employee and role are merged by summing hours
// and base pay.
func ParseReport(data []byte, roster Roster, cfg ParserConfig) ([]LaborRecord, error) {
	rows, err := reportRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyReport
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var records []LaborRecord
	byKey := map[string]int{}
	for n, row := range rows[1:] {
		rowNum := n + 2 // 1-based, counting the header
		if isBlankRow(row) {
			continue
		}
		role := strings.TrimSpace(cell(row, cols[colRole]))
		if !cfg.TippedRoles[role] {
			continue
		}

		idText := strings.TrimSpace(cell(row, cols[colPayrollID]))
		eid, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: payroll id %q is not numeric", ErrMalformedReport, rowNum, idText)
		}
		member, ok := roster[eid]
		if !ok {
			return nil, fmt.Errorf("%w: row %d: payroll id %d (%s)", ErrUnknownEmployee, rowNum, eid, cell(row, cols[colEmployee]))
		}

		worked, err := shiftLength(cell(row, cols[colTimeIn]), cell(row, cols[colTimeOut]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedReport, rowNum, err)
		}
		basePay, err := parseReportMoney(cell(row, cols[colTotalPay]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: total pay: %v", ErrMalformedReport, rowNum, err)
		}

		key := idText + "|" + role
		if i, seen := byKey[key]; seen {
			records[i].Worked += worked
			records[i].BasePay = records[i].BasePay.Add(basePay)
			continue
		}
		byKey[key] = len(records)
		records = append(records, LaborRecord{
			EID:      eid,
			Employee: member.Name,
			Role:     role,
			Worked:   worked,
			BasePay:  basePay,
		})
	}

	if len(records) == 0 {
		return nil, ErrEmptyReport
	}
	return records, nil
}

// reportRows extracts the shift table from the upload. XLSX files are
// recognized by the zip magic; everything else is treated as CSV.
func reportRows(data []byte) ([][]string, error) {
	if bytes.HasPrefix(data, []byte("PK")) {
		return xlsxRows(data)
	}
	return csvRows(data)
}

func csvRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
		}
		if stop, skip := frameMarker(row); stop {
			break
		} else if skip {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func xlsxRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyReport
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	var rows [][]string
	for _, row := range raw {
		if stop, skip := frameMarker(row); stop {
			break
		} else if skip {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// frameMarker handles the export's framing: a leading "Shifts" title row to
// skip and a trailing "Breaks" section to cut.
func frameMarker(row []string) (stop, skip bool) {
	if len(row) == 0 {
		return false, true
	}
	first := strings.TrimSpace(row[0])
	if strings.HasPrefix(first, "Breaks") {
		return true, false
	}
	if first == "Shifts" {
		return false, true
	}
	return false, false
}

func headerIndex(header []string) (map[string]int, error) {
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colEmployee, colPayrollID, colRole, colTimeIn, colTimeOut} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedReport, required)
		}
	}
	if _, ok := cols[colTotalPay]; !ok {
		cols[colTotalPay] = -1 // optional; base pay defaults to zero
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var clockLayouts = []string{"3:04 PM", "3:04PM", "15:04", "15:04:05"}

// parseClock returns the offset from midnight for a report time cell.
func parseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("cannot parse time %q", s)
}

// shiftLength computes the wall clock span between clock-in and clock-out.
// A clock-out earlier than clock-in means the shift crossed midnight.
func shiftLength(timeIn, timeOut string) (time.Duration, error) {
	in, err := parseClock(timeIn)
	if err != nil {
		return 0, err
	}
	out, err := parseClock(timeOut)
	if err != nil {
		return 0, err
	}
	if out < in {
		out += 24 * time.Hour
	}
	return out - in, nil
}

// parseReportMoney reads a currency cell, tolerating "$" and "," formatting.
func parseReportMoney(s string) (models.Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return models.ParseMoney(s)
}
