package loader

import (
	"math"
	"strconv"
	"strings"

	"f1standings/pkg/model"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	ColumnDriver      = "Driver"
	ColumnRace        = "Race"
	ColumnRound       = "Round"
	ColumnStanding    = "Standing"
	ColumnTotalPoints = "TotalPoints"
)

var requiredColumns = []string{ColumnDriver, ColumnRace, ColumnRound, ColumnStanding, ColumnTotalPoints}

// LoadXLSX reads the results sheet of the workbook at path. An empty sheet
// name selects the first sheet.
func LoadXLSX(path, sheet string) (model.Results, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", path)
	}
	defer f.Close()
	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) (model.Results, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("sheet %q is empty", sheet)
	}

	columns, err := locateColumns(rows[0])
	if err != nil {
		return nil, errors.Wrapf(err, "sheet %q", sheet)
	}

	results := make(model.Results, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}
		r, err := parseRow(row, columns)
		if err != nil {
			return nil, errors.Wrapf(err, "sheet %q row %d", sheet, rowNum)
		}
		results = append(results, r)
	}
	return results, nil
}

func locateColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		for _, required := range requiredColumns {
			if strings.EqualFold(name, required) {
				if _, dup := columns[required]; !dup {
					columns[required] = i
				}
			}
		}
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, errors.Errorf("missing column %q", required)
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int) (model.Result, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	r := model.Result{
		Driver: cell(ColumnDriver),
		Race:   cell(ColumnRace),
	}
	var err error
	if r.Round, err = parseInt(cell(ColumnRound)); err != nil {
		return r, errors.Wrapf(err, "column %q", ColumnRound)
	}
	if r.Standing, err = parseInt(cell(ColumnStanding)); err != nil {
		return r, errors.Wrapf(err, "column %q", ColumnStanding)
	}
	if r.TotalPoints, err = parseFloat(cell(ColumnTotalPoints)); err != nil {
		return r, errors.Wrapf(err, "column %q", ColumnTotalPoints)
	}
	return r, nil
}

// parseInt accepts "3" and spreadsheet floats such as "3.0".
func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, errors.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Errorf("%q is not a number", s)
	}
	return f, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
