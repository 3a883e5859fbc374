package file

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
)

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

const utf8BOM = "\ufeff"

// DatasetReader loads a whole CSV or JSON dataset into records, picking the
// format from the file extension.
type DatasetReader struct {
	source *LocalSource
}

func NewDatasetReader(source *LocalSource) *DatasetReader {
	return &DatasetReader{source: source}
}

func (r *DatasetReader) Read(ctx context.Context, sourcePath string) ([]dataset.Record, error) {
	var decode func(io.Reader) ([]dataset.Record, error)
	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".csv":
		decode = ReadCSV
	case ".json":
		decode = ReadJSON
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, sourcePath)
	}

	reader, err := r.source.Open(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	records, err := decode(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sourcePath, err)
	}
	return records, nil
}

// ReadCSV maps the header row onto the known columns case-insensitively.
// Unknown headers are ignored and empty cells are null.
func ReadCSV(r io.Reader) ([]dataset.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	positions := make([]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		idx, ok := dataset.ColumnIndex(normalizeKey(name))
		if !ok {
			idx = -1
		}
		positions[i] = idx
	}

	var records []dataset.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rec := dataset.NewRecord()
		for i, cell := range row {
			if i >= len(positions) || positions[i] < 0 || cell == "" {
				continue
			}
			v := norm.NFC.String(cell)
			rec.Values[positions[i]] = &v
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadJSON streams a top-level array of flat objects. Numbers and booleans are
// kept as their literal text; nested values are rejected.
func ReadJSON(r io.Reader) ([]dataset.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	token, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read json start token: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return nil, errors.New("dataset payload must be a JSON array")
	}

	var records []dataset.Record
	for index := 0; dec.More(); index++ {
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode record at index %d: %w", index, err)
		}

		rec := dataset.NewRecord()
		for key, value := range raw {
			idx, ok := dataset.ColumnIndex(normalizeKey(key))
			if !ok {
				continue
			}
			v, err := jsonValue(value)
			if err != nil {
				return nil, fmt.Errorf("decode record at index %d: field %q: %w", index, key, err)
			}
			rec.Values[idx] = v
		}
		records = append(records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read json end token: %w", err)
	}
	return records, nil
}

func jsonValue(value any) (*string, error) {
	var s string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		s = norm.NFC.String(v)
	case json.Number:
		s = v.String()
	case bool:
		s = strconv.FormatBool(v)
	default:
		return nil, fmt.Errorf("unsupported value of type %T", value)
	}
	return &s, nil
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
