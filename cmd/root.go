package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flowsim/flowsim/sim"
	"github.com/flowsim/flowsim/sim/report"
	"github.com/flowsim/flowsim/sim/scenario"
	"github.com/flowsim/flowsim/sim/stats"
	"github.com/flowsim/flowsim/sim/trace"
)

var (
	// CLI flags shared by all subcommands
	scenarioPath string // Path of the scenario YAML file
	logLevel     string // Log verbosity level

	// CLI flags of the run command
	runs        int      // Number of runs (0 = take from scenario)
	seed        int64    // Master seed (only used when set)
	horizon     string   // Horizon as HH:MM, minutes or "unlimited"
	teamCounts  []string // Per-category team counts as CAT=N
	statsOut    string   // Path of the YAML statistics export
	traceEvents bool     // Record every team step and print a trace summary
	minMax      bool     // Report true min/max instead of 5th/95th percentiles
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "flowsim",
	Short: "Discrete-event simulator for team flow through scouting courses",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates a scenario and prints the activity and team tables
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a course scenario",
	Run: func(cmd *cobra.Command, args []string) {
		o, err := overridesFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("Invalid flags: %v", err)
		}
		if err := runScenario(cmd.OutOrStdout(), scenarioPath, o); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// overridesFromFlags collects the run flags the user actually set.
func overridesFromFlags(cmd *cobra.Command) (scenario.Overrides, error) {
	o := scenario.Overrides{Runs: runs}
	if cmd.Flags().Changed("seed") {
		s := seed
		o.Seed = &s
	}
	if cmd.Flags().Changed("horizon") {
		h, err := scenario.ParseClock(horizon)
		if err != nil {
			return o, fmt.Errorf("--horizon: %w", err)
		}
		o.Horizon = &h
	}
	counts, err := parseTeamCounts(teamCounts)
	if err != nil {
		return o, err
	}
	o.Teams = counts
	return o, nil
}

// parseTeamCounts parses CAT=N pairs.
func parseTeamCounts(pairs []string) (map[string]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	counts := make(map[string]int, len(pairs))
	for _, p := range pairs {
		cat, n, ok := strings.Cut(p, "=")
		if !ok || cat == "" {
			return nil, fmt.Errorf("--teams %q: want CAT=N", p)
		}
		v, err := strconv.Atoi(n)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("--teams %q: team count must be a non-negative integer", p)
		}
		if _, dup := counts[cat]; dup {
			return nil, fmt.Errorf("--teams: category %q given twice", cat)
		}
		counts[cat] = v
	}
	return counts, nil
}

// loadScenario reads the scenario file and applies the overrides.
func loadScenario(path string, o scenario.Overrides) (*scenario.File, *sim.Scenario, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("no scenario file given; use --scenario")
	}
	f, err := scenario.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := f.Apply(o); err != nil {
		return nil, nil, err
	}
	sc, err := f.Build()
	if err != nil {
		return nil, nil, err
	}
	return f, sc, nil
}

// runScenario loads, simulates and reports one scenario.
func runScenario(out io.Writer, path string, o scenario.Overrides) error {
	f, sc, err := loadScenario(path, o)
	if err != nil {
		return err
	}
	cfg := f.EngineConfig()
	if traceEvents {
		cfg.Trace = trace.TraceConfig{Level: trace.TraceLevelEvents}
	}
	e, err := sim.NewEngine(sc, cfg)
	if err != nil {
		return err
	}

	for _, c := range sc.Courses {
		if _, err := fmt.Fprintln(out, report.DescribeCourse(c, teamsOnCourse(sc, c))); err != nil {
			return err
		}
	}
	logrus.Infof("Running %d simulations", cfg.Runs)
	startTime := time.Now()
	res, err := e.Run()
	if err != nil {
		return err
	}
	logrus.Infof("Simulated %d runs in %s", res.Runs, time.Since(startTime).Round(time.Millisecond))

	mode := stats.ModePercentile
	if minMax {
		mode = stats.ModeMinMax
	}
	rep := report.New(res, mode)
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if err := rep.WriteText(out); err != nil {
		return err
	}
	if res.Trace != nil {
		if err := writeTraceSummary(out, trace.Summarize(res.Trace)); err != nil {
			return err
		}
	}
	if statsOut != "" {
		if err := writeStats(statsOut, rep, res); err != nil {
			return err
		}
		logrus.Infof("Statistics written to %s", statsOut)
	}
	return nil
}

func teamsOnCourse(sc *sim.Scenario, c *sim.Course) int {
	n := 0
	for _, t := range sc.Teams {
		if t.Course == c {
			n++
		}
	}
	return n
}

func writeStats(path string, rep *report.Report, res *sim.Results) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating statistics file: %w", err)
	}
	if err := report.WriteYAML(file, rep, res); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func writeTraceSummary(out io.Writer, s *trace.TraceSummary) error {
	var sb strings.Builder
	sb.WriteString("\n=== Trace Summary ===\n")
	fmt.Fprintf(&sb, "Records              : %d\n", s.TotalRecords)
	fmt.Fprintf(&sb, "Teams started        : %d\n", s.StartedTeams)
	fmt.Fprintf(&sb, "Teams finished       : %d\n", s.FinishedTeams)
	fmt.Fprintf(&sb, "Total wait           : %.2f min\n", s.TotalWait)
	fmt.Fprintf(&sb, "Longest wait         : %.2f min\n", s.MaxWait)
	names := make([]string, 0, len(s.PeakQueue))
	for name := range s.PeakQueue {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "Peak queue %-10s: %d (peak occupancy %d)\n", name, s.PeakQueue[name], s.PeakHolders[name])
	}
	_, err := io.WriteString(out, sb.String())
	return err
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Path of the scenario YAML file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().IntVar(&runs, "runs", 0, "Number of runs (default: from scenario)")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "Master seed for speed and service draws (default: from scenario)")
	runCmd.Flags().StringVar(&horizon, "horizon", "", "Simulation horizon as HH:MM, minutes or \"unlimited\" (default: from scenario)")
	runCmd.Flags().StringArrayVar(&teamCounts, "teams", nil, "Team count of a category as CAT=N (repeatable)")
	runCmd.Flags().StringVar(&statsOut, "stats-out", "", "Write report and raw accumulators as YAML to this file")
	runCmd.Flags().BoolVar(&traceEvents, "trace", false, "Record every team step and print a trace summary")
	runCmd.Flags().BoolVar(&minMax, "min-max", false, "Report true min/max instead of 5th/95th percentiles")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(validateCmd)
}
