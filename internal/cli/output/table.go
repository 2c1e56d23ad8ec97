package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// TableFormatter formats data as an aligned table. An object renders as
// KEY/VALUE rows; a list of objects, or an object holding a single list,
// renders one row per element.
type TableFormatter struct {
	// Wide includes nested values as compact JSON instead of skipping them
	Wide bool
}

// Format formats data as a table.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if raw, ok := data.(json.RawMessage); ok {
		var decoded any
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&decoded); err != nil {
			return err
		}
		data = decoded
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	switch v := data.(type) {
	case map[string]any:
		if rows, ok := singleList(v); ok {
			f.writeRows(tw, rows)
		} else {
			f.writeObject(tw, v)
		}
	case map[string]string:
		obj := make(map[string]any, len(v))
		for k, s := range v {
			obj[k] = s
		}
		f.writeObject(tw, obj)
	case []any:
		f.writeRows(tw, v)
	default:
		fmt.Fprintln(tw, formatValue(v))
	}

	return tw.Flush()
}

func (f *TableFormatter) writeObject(w io.Writer, obj map[string]any) {
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, k := range sortedKeys(obj) {
		if isNested(obj[k]) && !f.Wide {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", k, formatValue(obj[k]))
	}
}

func (f *TableFormatter) writeRows(w io.Writer, rows []any) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}

	seen := map[string]bool{}
	var columns []string
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			continue
		}
		for k, v := range obj {
			if seen[k] || (isNested(v) && !f.Wide) {
				continue
			}
			seen[k] = true
			columns = append(columns, k)
		}
	}
	sort.Strings(columns)

	if len(columns) == 0 {
		for _, row := range rows {
			fmt.Fprintln(w, formatValue(row))
		}
		return
	}

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range rows {
		obj, _ := row.(map[string]any)
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = formatValue(obj[c])
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
}

func singleList(obj map[string]any) ([]any, bool) {
	if len(obj) != 1 {
		return nil, false
	}
	for _, v := range obj {
		rows, ok := v.([]any)
		return rows, ok
	}
	return nil, false
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNested(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case json.Number:
		return val.String()
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return "?"
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
