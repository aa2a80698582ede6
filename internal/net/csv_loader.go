package net

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// LoadCSV reads a training set from CSV.
// labelCols specifies the indices of columns to be used as outputs, in
// that order. All other columns are inputs.
// hasHeader skips the first line if true.
func LoadCSV(r io.Reader, labelCols []int, hasHeader bool) ([]Sample, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}
	if len(records) == 0 {
		return nil, errors.New("csv input is empty")
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, errors.New("csv input has no data rows")
	}
	if len(labelCols) == 0 {
		return nil, errors.New("no label columns given")
	}

	numCols := len(records[0])
	isLabelCol := make(map[int]bool, len(labelCols))
	for _, col := range labelCols {
		if col < 0 || col >= numCols {
			return nil, errors.Errorf("label column %d out of range [0, %d)", col, numCols)
		}
		isLabelCol[col] = true
	}
	if len(isLabelCol) == numCols {
		return nil, errors.New("every column is a label column")
	}

	data := make([]Sample, 0, len(records)-startRow)
	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, errors.Errorf("inconsistent number of columns at row %d", i)
		}

		values := make([]float64, numCols)
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %d", i, j)
			}
			values[j] = v
		}

		s := Sample{
			Input:  make([]float64, 0, numCols-len(isLabelCol)),
			Output: make([]float64, 0, len(labelCols)),
		}
		for j, v := range values {
			if !isLabelCol[j] {
				s.Input = append(s.Input, v)
			}
		}
		for _, col := range labelCols {
			s.Output = append(s.Output, values[col])
		}
		data = append(data, s)
	}
	return data, nil
}

// LoadJSON reads a training set encoded as an array of
// {"input": [...], "output": [...]} objects.
func LoadJSON(r io.Reader) ([]Sample, error) {
	var data []Sample
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode json training set")
	}
	if len(data) == 0 {
		return nil, errors.New("json training set is empty")
	}
	return data, nil
}

// Normalize performs in-place min-max normalization of the inputs to [0, 1].
// Constant columns become 0.
func Normalize(data []Sample) {
	if len(data) == 0 {
		return
	}

	numFeatures := len(data[0].Input)
	lo := append([]float64(nil), data[0].Input...)
	hi := append([]float64(nil), data[0].Input...)
	for _, s := range data {
		for i := 0; i < numFeatures && i < len(s.Input); i++ {
			lo[i] = min(lo[i], s.Input[i])
			hi[i] = max(hi[i], s.Input[i])
		}
	}

	for _, s := range data {
		for i := 0; i < numFeatures && i < len(s.Input); i++ {
			if diff := hi[i] - lo[i]; diff != 0 {
				s.Input[i] = (s.Input[i] - lo[i]) / diff
			} else {
				s.Input[i] = 0
			}
		}
	}
}

// Split splits data into a training and a test set at ratio (0.0 to 1.0).
// Both slices share the backing array of data.
func Split(data []Sample, ratio float64) (train, test []Sample) {
	if ratio <= 0 {
		return nil, data
	}
	if ratio >= 1 {
		return data, nil
	}
	idx := int(float64(len(data)) * ratio)
	return data[:idx], data[idx:]
}
