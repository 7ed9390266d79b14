package solverexport

// Diagonal reduces a square matrix to its diagonal entries in row order.
// Off-diagonal coupling terms are discarded. Empty, nil, ragged, non-square
// and non-numeric inputs yield an empty slice, never an error.
func Diagonal(matrix any) []float64 {
	rows, ok := asMatrix(matrix)
	if !ok || len(rows) == 0 {
		return []float64{}
	}
	n := len(rows)
	out := make([]float64, 0, n)
	for i, row := range rows {
		if len(row) != n {
			return []float64{}
		}
		out = append(out, row[i])
	}
	return out
}

// asMatrix converts decoded JSON (or an already typed matrix) into rows of floats.
func asMatrix(value any) ([][]float64, bool) {
	switch m := value.(type) {
	case [][]float64:
		return m, true
	case []any:
		rows := make([][]float64, 0, len(m))
		for _, item := range m {
			row, ok := asVector(item)
			if !ok {
				return nil, false
			}
			rows = append(rows, row)
		}
		return rows, true
	default:
		return nil, false
	}
}

// asVector converts decoded JSON (or an already typed slice) into floats.
func asVector(value any) ([]float64, bool) {
	switch v := value.(type) {
	case []float64:
		return v, true
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	default:
		return nil, false
	}
}

// isMatrix reports whether value is a non-empty sequence whose items are all sequences.
func isMatrix(value any) bool {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return false
	}
	for _, item := range items {
		if _, ok := item.([]any); !ok {
			return false
		}
	}
	return true
}
