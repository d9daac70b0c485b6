// Package indicator contains the built-in technical indicator nodes.
package indicator

import "fmt"

// Floats coerces an input value into a float slice. Workflow inputs arrive
// either as native float slices or as []any after JSON decoding.
func Floats(v any) ([]float64, error) {
	switch s := v.(type) {
	case []float64:
		return s, nil
	case []any:
		out := make([]float64, len(s))
		for i, e := range s {
			switch n := e.(type) {
			case float64:
				out[i] = n
			case int:
				out[i] = float64(n)
			case int64:
				out[i] = float64(n)
			default:
				return nil, fmt.Errorf("element %d: expected number, got %T", i, e)
			}
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("missing value")
	default:
		return nil, fmt.Errorf("expected number series, got %T", v)
	}
}

// Window coerces the window/period input, applying a fallback when absent.
func Window(v any, fallback int) (int, error) {
	var n int
	switch w := v.(type) {
	case nil:
		n = fallback
	case int:
		n = w
	case int64:
		n = int(w)
	case float64:
		n = int(w)
	default:
		return 0, fmt.Errorf("expected integer window, got %T", v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("window must be positive, got %d", n)
	}
	return n, nil
}
