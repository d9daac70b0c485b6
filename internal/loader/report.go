package loader

import "fmt"

// UnitLoadError wraps a per-unit load failure with the path that caused it.
type UnitLoadError struct {
	Path string
	Err  error
}

func (e *UnitLoadError) Error() string {
	return fmt.Sprintf("unit %s: %v", e.Path, e.Err)
}

func (e *UnitLoadError) Unwrap() error {
	return e.Err
}

// Report aggregates the outcome of one load pass. Per-unit failures are
// collected here and logged; they never propagate as errors.
type Report struct {
	Scanned  int
	Loaded   int
	Failed   int
	Failures []*UnitLoadError
}

func (r *Report) success() {
	r.Scanned++
	r.Loaded++
}

func (r *Report) fail(path string, err error) *UnitLoadError {
	r.Scanned++
	r.Failed++
	failure := &UnitLoadError{Path: path, Err: err}
	r.Failures = append(r.Failures, failure)
	return failure
}

// Merge folds another report into this one.
func (r *Report) Merge(other *Report) *Report {
	if other == nil {
		return r
	}
	r.Scanned += other.Scanned
	r.Loaded += other.Loaded
	r.Failed += other.Failed
	r.Failures = append(r.Failures, other.Failures...)
	return r
}
