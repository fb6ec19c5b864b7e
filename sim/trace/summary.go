package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords  int
	Runs          int
	StartedTeams  int            // start records across all runs
	FinishedTeams int            // finish records across all runs
	PeakHolders   map[string]int // activity → highest occupancy seen at a grant
	PeakQueue     map[string]int // activity → longest queue seen at an arrival
	TotalWait     float64
	MaxWait       float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PeakHolders: make(map[string]int),
		PeakQueue:   make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalRecords = len(st.Records)
	runs := make(map[int]bool)
	for _, r := range st.Records {
		runs[r.Run] = true
		switch r.Kind {
		case KindStart:
			summary.StartedTeams++
		case KindFinish:
			summary.FinishedTeams++
		case KindArrive:
			if r.QueueLen > summary.PeakQueue[r.Activity] {
				summary.PeakQueue[r.Activity] = r.QueueLen
			}
		case KindGrant:
			if r.Holders > summary.PeakHolders[r.Activity] {
				summary.PeakHolders[r.Activity] = r.Holders
			}
			summary.TotalWait += r.Duration
			if r.Duration > summary.MaxWait {
				summary.MaxWait = r.Duration
			}
		}
	}
	summary.Runs = len(runs)

	return summary
}
