package bibliography

import (
	"context"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/mmap"
)

const utf8BOM = "\ufeff"

// CSVSource reads articles from a delimited text file with a header row
type CSVSource struct {
	Path      string
	Delimiter rune
}

// NewCSVSource creates a CSV source; a zero delimiter means ','
func NewCSVSource(path string, delimiter rune) *CSVSource {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVSource{Path: path, Delimiter: delimiter}
}

// Name returns the file path
func (s *CSVSource) Name() string {
	return s.Path
}

// Load maps the file into memory, fingerprints it and parses every row
func (s *CSVSource) Load(ctx context.Context) (*Dataset, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Op: "open", Source: s.Path, Cause: fmt.Errorf("%w: %w", ErrInputNotFound, err)}
		}
		return nil, &LoadError{Op: "open", Source: s.Path, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{Op: "open", Source: s.Path, Cause: ErrNotRegular}
	}

	ra, err := mmap.Open(s.Path)
	if err != nil {
		return nil, &LoadError{Op: "open", Source: s.Path, Cause: err}
	}
	defer ra.Close()

	size := int64(ra.Len())

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, io.NewSectionReader(ra, 0, size)); err != nil {
		return nil, &LoadError{Op: "read", Source: s.Path, Cause: err}
	}

	ds, err := s.parse(ctx, io.NewSectionReader(ra, 0, size))
	if err != nil {
		return nil, err
	}
	ds.Digest = hex.EncodeToString(h.Sum(nil))
	return ds, nil
}

// Parse reads articles from r; it is Load without the file handling
func (s *CSVSource) Parse(ctx context.Context, r io.Reader) (*Dataset, error) {
	return s.parse(ctx, r)
}

func (s *CSVSource) parse(ctx context.Context, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Op: "header", Source: s.Path, Cause: ErrEmptyInput}
		}
		return nil, &LoadError{Op: "header", Source: s.Path, Cause: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}

	index, err := columnIndex(s.Path, header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Source: s.Path}
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &LoadError{Op: "read", Source: s.Path, Row: row, Cause: fmt.Errorf("%w: %w", ErrMalformed, err)}
		}
		if row%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlankRecord(record) {
			row--
			continue
		}

		cell := func(column string) string {
			i := index[column]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}

		article, invalid := articleFromCells(row, cell)
		ds.Articles = append(ds.Articles, article)
		ds.Invalid = append(ds.Invalid, invalid...)
	}

	return ds, nil
}

// columnIndex maps each required column to its position in the header
func columnIndex(source string, header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	index := make(map[string]int, len(RequiredColumns))
	for _, column := range RequiredColumns {
		i, ok := positions[column]
		if !ok {
			return nil, missingColumn(source, column)
		}
		index[column] = i
	}
	return index, nil
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// articleFromCells converts raw cells into an Article and reports
// unparseable numeric cells
func articleFromCells(row int, cell func(column string) string) (Article, []InvalidValue) {
	var invalid []InvalidValue
	note := func(column string, state cellState) {
		if state == cellInvalid {
			invalid = append(invalid, InvalidValue{Row: row, Column: column, Value: cell(column)})
		}
	}

	year, state := parseIntCell(cell(ColumnYear))
	note(ColumnYear, state)

	citesPerYear, state := parseFloatCell(cell(ColumnCitesPerYear))
	note(ColumnCitesPerYear, state)

	cites, state := parseIntCell(cell(ColumnCites))
	note(ColumnCites, state)

	return NewArticle(row, cell(ColumnAuthors), year, citesPerYear, strings.TrimSpace(cell(ColumnTitle)), cites), invalid
}
