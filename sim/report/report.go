// Package report turns the cross-run accumulators of a finished execution
// into the activity and team tables used to plan staffing, and exports them.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/flowsim/flowsim/sim"
	"github.com/flowsim/flowsim/sim/stats"
)

// ActivityRow summarizes one activity over all runs.
type ActivityRow struct {
	Name         string                  `yaml:"name"`
	Window       stats.Window            `yaml:"window"`
	TotalWait    stats.Summary           `yaml:"total_wait"`
	AverageWait  stats.Summary           `yaml:"average_wait"`
	MaxQueue     stats.Summary           `yaml:"max_queue"`
	VisitsPerRun float64                 `yaml:"visits_per_run"`
	Bands        map[string][]stats.Band `yaml:"bands"` // category -> Gantt bands
}

// TeamRow summarizes one team over all runs.
type TeamRow struct {
	Name        string        `yaml:"name"`
	Category    string        `yaml:"category"`
	Start       float64       `yaml:"start"`
	Completion  stats.Summary `yaml:"completion"`
	Finished    int           `yaml:"finished"` // runs in which the team reached its finish
	TotalWait   stats.Summary `yaml:"total_wait"`
	AverageWait stats.Summary `yaml:"average_wait"`
}

// Report holds the tables of one scenario execution.
type Report struct {
	Scenario   string        `yaml:"scenario"`
	Runs       int           `yaml:"runs"`
	Mode       string        `yaml:"mode"`
	Activities []ActivityRow `yaml:"activities"`
	Teams      []TeamRow     `yaml:"teams"`
}

// New reduces res into a Report. mode selects percentiles or true extremes
// for the low/high columns.
func New(res *sim.Results, mode stats.Mode) *Report {
	r := &Report{
		Scenario:   res.Scenario,
		Runs:       res.Runs,
		Mode:       modeName(mode),
		Activities: make([]ActivityRow, 0, len(res.Activities)),
		Teams:      make([]TeamRow, 0, len(res.Teams)),
	}
	for _, a := range res.Activities {
		row := ActivityRow{
			Name:         a.Name,
			Window:       stats.OpeningWindow(a, res.Categories),
			TotalWait:    stats.SumThenSummarize(a.Waits, mode),
			AverageWait:  stats.MeanThenSummarize(a.Waits, mode),
			MaxQueue:     stats.Summarize(stats.IntsToFloats(a.MaxQueue), mode),
			VisitsPerRun: stats.VisitsPerRun(a),
			Bands:        make(map[string][]stats.Band, len(res.Categories)),
		}
		for _, cat := range res.Categories {
			row.Bands[cat] = stats.GanttBands(a, cat)
		}
		r.Activities = append(r.Activities, row)
	}
	for _, t := range res.Teams {
		completions := stats.CompletionTimes(t)
		r.Teams = append(r.Teams, TeamRow{
			Name:        t.Name,
			Category:    t.Category,
			Start:       t.StartTime,
			Completion:  stats.Summarize(completions, mode),
			Finished:    len(completions),
			TotalWait:   stats.SumThenSummarize(t.Waits, mode),
			AverageWait: stats.MeanThenSummarize(t.Waits, mode),
		})
	}
	return r
}

func modeName(mode stats.Mode) string {
	if mode == stats.ModeMinMax {
		return "min-max"
	}
	return "percentile"
}

// FormatClock renders minutes since midnight as HH:MM. Hours are not
// wrapped, so 25:30 is 01:30 the next day. Fractions of a minute are
// truncated.
func FormatClock(minutes float64) string {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return "--:--"
	}
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	total := int(minutes)
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

// FormatClockSummary renders a summary of timestamps or durations as
// (low/high/mean) in HH:MM.
func FormatClockSummary(s stats.Summary) string {
	return fmt.Sprintf("(%s/%s/%s)", FormatClock(s.Low), FormatClock(s.High), FormatClock(s.Mean))
}

// FormatCountSummary renders a summary of counts as (low/high/mean).
func FormatCountSummary(s stats.Summary) string {
	return fmt.Sprintf("(%d/%d/%.2f)", int(s.Low), int(s.High), s.Mean)
}

// DescribeCourse renders a course as "Name (n teams):" followed by its
// elements and the total walking distance.
func DescribeCourse(c *sim.Course, teams int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d teams):\n", c.Name, teams)
	sb.WriteString(strings.TrimSpace(c.String()))
	fmt.Fprintf(&sb, "\nTotal distance: %.1f km", c.Distance())
	return sb.String()
}

// WriteText prints the activity and team tables.
func (r *Report) WriteText(w io.Writer) error {
	nameWidth := 9
	for _, a := range r.Activities {
		nameWidth = max(nameWidth, utf8.RuneCountInString(a.Name))
	}
	ew := &errWriter{w: w}
	ew.printf("=== Activities: %s (%d runs, %s) ===\n", r.Scenario, r.Runs, r.Mode)
	ew.printf("%*s  %-5s  %-5s  %-20s  %-20s  %-18s  %s\n",
		nameWidth, "Activity", "Open", "Close", "Total wait", "Avg. wait", "Max queue", "Visits/run")
	for _, a := range r.Activities {
		ew.printf("%*s  %-5s  %-5s  %-20s  %-20s  %-18s  %.2f\n",
			nameWidth, a.Name,
			FormatClock(a.Window.Open), FormatClock(a.Window.Close),
			FormatClockSummary(a.TotalWait), FormatClockSummary(a.AverageWait),
			FormatCountSummary(a.MaxQueue), a.VisitsPerRun)
	}
	ew.printf("\n=== Teams ===\n")
	for _, t := range r.Teams {
		ew.printf("%s: Start=%s, End=%s, Finished=%d/%d, Total wait=%s, Avg. wait/run=%s\n",
			t.Name, FormatClock(t.Start), FormatClockSummary(t.Completion), t.Finished, r.Runs,
			FormatClockSummary(t.TotalWait), FormatClockSummary(t.AverageWait))
	}
	return ew.err
}

// Export is the document written by WriteYAML: the reduced tables plus the
// raw accumulators for external plotting.
type Export struct {
	Report  *Report      `yaml:"report"`
	Results *sim.Results `yaml:"results"`
}

// WriteYAML writes the report together with the raw accumulators of res.
func WriteYAML(w io.Writer, r *Report, res *sim.Results) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Export{Report: r, Results: res}); err != nil {
		return fmt.Errorf("encoding statistics: %w", err)
	}
	return enc.Close()
}

// errWriter keeps the first write error so a table can be printed without
// checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
