package model

import "fmt"

// FailurePolicy decides what happens to a literal record that cannot be
// converted into a feature.
type FailurePolicy string

const (
	// PolicyAbort fails the whole build on the first bad record.
	PolicyAbort FailurePolicy = "abort"
	// PolicySkip logs a warning and drops the record. The record still
	// counts towards the attribute frequency used by filtering.
	PolicySkip FailurePolicy = "skip"
)

func ParsePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case "":
		return PolicyAbort, nil
	case PolicyAbort, PolicySkip:
		return FailurePolicy(s), nil
	default:
		return "", fmt.Errorf("unknown failure policy %q (want abort or skip)", s)
	}
}
