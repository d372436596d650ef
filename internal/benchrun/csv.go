package benchrun

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// csvHeader lists the columns written by WriteCSV, in order.
var csvHeader = []string{"n", "m", "k", "false_pos", "probes", "empirical_p", "theory_p", "elapsed_s"}

// WriteCSV writes results as CSV with a header row. Rates and elapsed
// seconds are formatted with six decimal places.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			strconv.Itoa(r.N),
			strconv.FormatUint(r.M, 10),
			strconv.FormatUint(r.K, 10),
			strconv.Itoa(r.FalsePositives),
			strconv.Itoa(r.Probes),
			strconv.FormatFloat(r.EmpiricalP, 'f', 6, 64),
			strconv.FormatFloat(r.TheoryP, 'f', 6, 64),
			strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses results written by WriteCSV. Columns are matched by
// header name; n, empirical_p, and theory_p are required, the rest are
// filled in when present.
func ReadCSV(r io.Reader) ([]Result, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("benchrun: reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("benchrun: csv has no header row")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range []string{"n", "empirical_p", "theory_p"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("benchrun: csv missing column %q", name)
		}
	}

	results := make([]Result, 0, len(records)-1)
	for rowIdx, rec := range records[1:] {
		row := rowIdx + 2 // 1-based, after the header

		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		var res Result
		if res.N, err = strconv.Atoi(get("n")); err != nil {
			return nil, fmt.Errorf("benchrun: row %d: bad n %q", row, get("n"))
		}
		if res.EmpiricalP, err = strconv.ParseFloat(get("empirical_p"), 64); err != nil {
			return nil, fmt.Errorf("benchrun: row %d: bad empirical_p %q", row, get("empirical_p"))
		}
		if res.TheoryP, err = strconv.ParseFloat(get("theory_p"), 64); err != nil {
			return nil, fmt.Errorf("benchrun: row %d: bad theory_p %q", row, get("theory_p"))
		}

		// Optional columns
		if s := get("m"); s != "" {
			if res.M, err = strconv.ParseUint(s, 10, 64); err != nil {
				return nil, fmt.Errorf("benchrun: row %d: bad m %q", row, s)
			}
		}
		if s := get("k"); s != "" {
			if res.K, err = strconv.ParseUint(s, 10, 64); err != nil {
				return nil, fmt.Errorf("benchrun: row %d: bad k %q", row, s)
			}
		}
		if s := get("false_pos"); s != "" {
			if res.FalsePositives, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("benchrun: row %d: bad false_pos %q", row, s)
			}
		}
		if s := get("probes"); s != "" {
			if res.Probes, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("benchrun: row %d: bad probes %q", row, s)
			}
		}
		if s := get("elapsed_s"); s != "" {
			sec, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("benchrun: row %d: bad elapsed_s %q", row, s)
			}
			res.Elapsed = time.Duration(sec * float64(time.Second))
		}

		results = append(results, res)
	}
	return results, nil
}
