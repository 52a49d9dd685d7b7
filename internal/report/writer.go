package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/probeherd/probeherd/internal/probe"
)

const separator = "----------------------------------------"

// JSONResult is the machine-readable form of one per-target result
type JSONResult struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Probe      string            `json:"probe"`
	Outcome    string            `json:"outcome"`
	Output     string            `json:"output,omitempty"`
	Error      string            `json:"error,omitempty"`
	TimedOut   bool              `json:"timed_out,omitempty"`
	DurationMS int64             `json:"duration_ms"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Writer renders aggregated probe reports in human readable text or
// machine readable json
type Writer struct {
	out io.Writer
}

// NewWriter returns a report writer targeting out
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteText renders one labeled block per target plus a run summary
func (w *Writer) WriteText(results []*probe.Result) error {
	succeeded := 0

	for _, r := range results {
		marker := "[-]"

		if r.Outcome == probe.OutcomeSuccess {
			marker = "[+]"
			succeeded++
		}

		fmt.Fprintf(w.out, "%s %s (%s)\n", marker, r.TargetID, r.Label)
		fmt.Fprintf(w.out, "    operation: %s\n", r.Probe)
		fmt.Fprintf(w.out, "    %s\n", separator)

		if r.Output != "" {
			for _, line := range strings.Split(r.Output, "\n") {
				fmt.Fprintf(w.out, "    %s\n", line)
			}
		}

		if r.Error != "" {
			fmt.Fprintf(w.out, "    ERROR: %s\n", r.Error)
		}

		fmt.Fprintf(w.out, "    completed in %s\n\n", r.Duration.Round(time.Millisecond))
	}

	_, err := fmt.Fprintf(
		w.out,
		"%d succeeded, %d failed, %d targets\n",
		succeeded,
		len(results)-succeeded,
		len(results),
	)

	return err
}

// WriteJSON renders all results as a single json array
func (w *Writer) WriteJSON(results []*probe.Result) error {
	jsonResults := make([]JSONResult, 0, len(results))

	for _, r := range results {
		jsonResults = append(jsonResults, JSONResult{
			ID:         r.TargetID,
			Label:      r.Label,
			Probe:      r.Probe,
			Outcome:    string(r.Outcome),
			Output:     r.Output,
			Error:      r.Error,
			TimedOut:   r.TimedOut,
			DurationMS: r.Duration.Milliseconds(),
			Metadata:   r.Metadata,
		})
	}

	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(jsonResults)
}

// RunToResults converts a stored run back into probe results so stored
// reports render through the same code paths as live ones
func RunToResults(run *Run) ([]*probe.Result, error) {
	results := make([]*probe.Result, 0, len(run.Results))

	for _, record := range run.Results {
		result := &probe.Result{
			TargetID: record.TargetID,
			Label:    record.Label,
			Probe:    run.Probe,
			Outcome:  probe.Outcome(record.Outcome),
			Output:   record.Output,
			Error:    record.Error,
			TimedOut: record.TimedOut,
			Duration: time.Duration(record.DurationMS) * time.Millisecond,
		}

		if len(record.Metadata) > 0 {
			metadata := map[string]string{}

			if err := json.Unmarshal(record.Metadata, &metadata); err != nil {
				return nil, err
			}

			result.Metadata = metadata
		}

		results = append(results, result)
	}

	return results, nil
}
