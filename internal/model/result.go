package model

import "fmt"

// Severity classifies the outcome of a single pipeline step.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity is the inverse of Severity.String.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "ok":
		return SeverityOK, nil
	case "warning":
		return SeverityWarning, nil
	case "fatal":
		return SeverityFatal, nil
	}
	return SeverityOK, fmt.Errorf("unknown severity %q", s)
}

// StepResult is the outcome of one operation. Err is nil only for SeverityOK.
type StepResult struct {
	Step     string
	Severity Severity
	Err      error
}

func OK(step string) StepResult { return StepResult{Step: step, Severity: SeverityOK} }

func Warning(step string, err error) StepResult {
	return StepResult{Step: step, Severity: SeverityWarning, Err: err}
}

func Fatal(step string, err error) StepResult {
	return StepResult{Step: step, Severity: SeverityFatal, Err: err}
}

// Report collects step results in execution order.
type Report []StepResult

// Severity returns the worst severity in the report.
func (r Report) Severity() Severity {
	worst := SeverityOK
	for _, s := range r {
		if s.Severity > worst {
			worst = s.Severity
		}
	}
	return worst
}

// Fatal returns the first fatal step, if any.
func (r Report) Fatal() (StepResult, bool) {
	for _, s := range r {
		if s.Severity == SeverityFatal {
			return s, true
		}
	}
	return StepResult{}, false
}

// Warnings returns all warning steps.
func (r Report) Warnings() []StepResult {
	var out []StepResult
	for _, s := range r {
		if s.Severity == SeverityWarning {
			out = append(out, s)
		}
	}
	return out
}
