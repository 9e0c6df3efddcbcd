package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/vkleiv/energy-data-pipeline/internal/record"
	"github.com/vkleiv/energy-data-pipeline/internal/temporal"
)

// CSVFile reads weather records from a local comma-separated file with a
// header row. No network I/O is involved. Unlike the remote path, rows are
// sorted ascending by their eagerly parsed time column before being handed
// onward.
type CSVFile struct {
	path       string
	timeColumn string
}

// NewCSVFile creates the adapter for the given path. timeColumn names the
// header column to sort by; it defaults to "time".
func NewCSVFile(path, timeColumn string) *CSVFile {
	if timeColumn == "" {
		timeColumn = "time"
	}
	return &CSVFile{path: path, timeColumn: timeColumn}
}

// Fetch reads the whole file into raw records. Cells that parse as numbers
// become number values, everything else stays a string; interpretation
// beyond that is the normalizer's job.
func (f *CSVFile) Fetch(ctx context.Context) ([]record.Raw, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s", ErrEmptyResult, f.path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	timeIdx := -1
	for i, name := range header {
		if name == f.timeColumn {
			timeIdx = i
			break
		}
	}

	type timedRecord struct {
		raw record.Raw
		ts  time.Time
		ok  bool
	}

	var rows []timedRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}

		raw := make(record.Raw, 0, len(cells))
		for i, cell := range cells {
			if i >= len(header) {
				break
			}
			raw = append(raw, record.Field{Name: header[i], Value: cellValue(cell)})
		}

		tr := timedRecord{raw: raw}
		if timeIdx >= 0 && timeIdx < len(cells) {
			tr.ts, tr.ok = temporal.ParseString(cells[timeIdx])
		}
		rows = append(rows, tr)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, f.path)
	}

	// Rows with an unparseable time keep their relative order at the end;
	// the normalizer decides their fate.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ok != rows[j].ok {
			return rows[i].ok
		}
		return rows[i].ts.Before(rows[j].ts)
	})

	records := make([]record.Raw, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.raw)
	}
	return records, nil
}

func cellValue(cell string) record.Value {
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return record.Number(n)
	}
	return record.String(cell)
}
