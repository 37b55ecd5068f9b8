package warning

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Report is a serialisable summary of the conditions a Handler recorded.
type Report struct {
	Session    string          `yaml:"session"`
	Source     string          `yaml:"source,omitempty"`
	Policy     string          `yaml:"policy"`
	Counts     map[string]int  `yaml:"counts,omitempty"`
	Conditions []ReportedIssue `yaml:"conditions,omitempty"`
}

// ReportedIssue is one entry of a Report.
type ReportedIssue struct {
	Kind    string `yaml:"kind"`
	Line    int    `yaml:"line,omitempty"`
	Message string `yaml:"message"`
}

// Report summarises the handler's recorded conditions for source.
//
// Postcondition: Conditions are in the order they were raised.
func (h *Handler) Report(source string) *Report {
	r := &Report{
		Session: h.session,
		Source:  source,
		Policy:  h.policy.String(),
		Counts:  make(map[string]int),
	}
	for _, err := range h.conditions {
		issue := ReportedIssue{Kind: "other", Message: err.Error()}
		var c Condition
		if errors.As(err, &c) {
			issue.Kind = string(c.Kind())
			issue.Line = c.Line()
		}
		r.Counts[issue.Kind]++
		r.Conditions = append(r.Conditions, issue)
	}
	return r
}

// Kinds returns the kinds present in the report, sorted.
func (r *Report) Kinds() []string {
	out := make([]string, 0, len(r.Counts))
	for k := range r.Counts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WriteYAML writes the report as YAML.
//
// Postcondition: Returns nil on success or the encoding/write error.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding condition report: %w", err)
	}
	return enc.Close()
}

// ParseReport decodes a report previously written by WriteYAML.
func ParseReport(data []byte) (*Report, error) {
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing condition report: %w", err)
	}
	return &r, nil
}
