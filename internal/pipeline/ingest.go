package pipeline

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMissingHeader means the input ended before the header row
	ErrMissingHeader = errors.New("missing header row")
	// ErrNoYearColumns means the header row has no usable year column
	ErrNoYearColumns = errors.New("no year columns in header")
)

// Table is the fully buffered content of an input file
type Table struct {
	Header  []string
	Rows    [][]string
	Skipped int // records encoding/csv could not parse
}

// ------------------- Ingestion -------------------

// ReadTable skips the metadata preamble and reads the header and every data
// row. Preamble lines are counted raw, blank ones included, since
// encoding/csv skips blank lines.
func ReadTable(ctx context.Context, r io.Reader, opts Options) (*Table, error) {
	br := bufio.NewReader(r)
	skipBOM(br)
	for i := 0; i < opts.PreambleLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: input ended after %d metadata lines", ErrMissingHeader, i)
			}
			return nil, fmt.Errorf("failed to read metadata line %d: %w", i+1, err)
		}
	}

	skipBOM(br)

	csvReader := csv.NewReader(br)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	if opts.Delimiter != 0 {
		csvReader.Comma = opts.Delimiter
	}

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	} else if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := &Table{Header: header}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := csvReader.Read()
		if err == io.EOF {
			return table, nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			table.Skipped++
			continue
		} else if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		table.Rows = append(table.Rows, record)
	}
}

// skipBOM drops a UTF-8 byte order mark at the current position
func skipBOM(br *bufio.Reader) {
	r, _, err := br.ReadRune()
	if err == nil && r != '\ufeff' {
		br.UnreadRune()
	}
}
