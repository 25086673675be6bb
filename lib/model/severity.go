package model

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var severities = map[string]Severity{
	"LOW":      SeverityLow,
	"MEDIUM":   SeverityMedium,
	"HIGH":     SeverityHigh,
	"CRITICAL": SeverityCritical,
}

func ParseSeverity(s string) (Severity, error) {
	result, ok := severities[s]
	if !ok {
		return "", fmt.Errorf("unknown severity: %v", s)
	}
	return result, nil
}
