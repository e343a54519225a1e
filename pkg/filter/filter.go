package filter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vela/pkg/interpreter"
	"vela/pkg/value"
)

// Record is one data record: field name -> value
type Record map[string]value.Operand

// Apply evaluates a boolean expression once per record, with the record's
// fields bound in an immutable environment, and returns the indices of the
// matching records in order
func Apply(vela *interpreter.Interpreter, expr string, records []Record) ([]int, error) {
	var matches []int

	for k, record := range records {
		ok, err := match(vela, expr, record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", k, err)
		}
		if ok {
			matches = append(matches, k)
		}
	}

	return matches, nil
}

func match(vela *interpreter.Interpreter, expr string, record Record) (bool, error) {
	vela.PushEnvironment(interpreter.NewRecordEnvironment(record))
	defer vela.PopEnvironment()

	return vela.BooleanExpression(expr)
}

// Select returns the records at the given indices
func Select(records []Record, indices []int) []Record {
	selected := make([]Record, 0, len(indices))
	for _, k := range indices {
		selected = append(selected, records[k])
	}
	return selected
}

// LoadRecords reads a YAML sequence of mappings, e.g.
//
//	- {jd: 2451544.5, mag: 5.2, band: V}
//	- {jd: 2451545.5, mag: 5.9, band: B}
func LoadRecords(r io.Reader) ([]Record, error) {
	var raw []map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding records: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for k, fields := range raw {
		record := make(Record, len(fields))
		for name, x := range fields {
			v, err := value.FromGo(x)
			if err != nil {
				return nil, fmt.Errorf("record %d, field %s: %w", k, name, err)
			}
			record[name] = v
		}
		records = append(records, record)
	}

	return records, nil
}

// LoadRecordsFile reads records from a YAML file
func LoadRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records file %s: %w", path, err)
	}
	defer f.Close()

	return LoadRecords(f)
}
