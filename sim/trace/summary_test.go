package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalRecords != 0 || summary.Runs != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.PeakHolders == nil || summary.PeakQueue == nil {
		t.Error("expected non-nil maps")
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalRecords != 0 {
		t.Errorf("expected 0 records, got %d", summary.TotalRecords)
	}
	if summary.StartedTeams != 0 || summary.FinishedTeams != 0 {
		t.Error("expected 0 started and finished")
	}
	if summary.TotalWait != 0 || summary.MaxWait != 0 {
		t.Error("expected 0 wait values")
	}
	if len(summary.PeakHolders) != 0 || len(summary.PeakQueue) != 0 {
		t.Error("expected empty peak maps")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN two runs with two teams contending for A
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	for run := 0; run < 2; run++ {
		st.Record(EventRecord{Run: run, Kind: KindStart, Team: "t1"})
		st.Record(EventRecord{Run: run, Kind: KindStart, Team: "t2"})
		st.Record(EventRecord{Run: run, Kind: KindArrive, Team: "t1", Activity: "A", Holders: 1, QueueLen: 0})
		st.Record(EventRecord{Run: run, Kind: KindArrive, Team: "t2", Activity: "A", Holders: 1, QueueLen: 1})
		st.Record(EventRecord{Run: run, Kind: KindGrant, Team: "t1", Activity: "A", Holders: 1})
		st.Record(EventRecord{Run: run, Kind: KindGrant, Team: "t2", Activity: "A", Holders: 1, Duration: 5})
		st.Record(EventRecord{Run: run, Kind: KindFinish, Team: "t1"})
	}

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.Runs != 2 {
		t.Errorf("expected 2 runs, got %d", summary.Runs)
	}
	if summary.StartedTeams != 4 {
		t.Errorf("expected 4 starts, got %d", summary.StartedTeams)
	}
	if summary.FinishedTeams != 2 {
		t.Errorf("expected 2 finishes, got %d", summary.FinishedTeams)
	}
	if summary.PeakQueue["A"] != 1 {
		t.Errorf("expected peak queue 1, got %d", summary.PeakQueue["A"])
	}
	if summary.PeakHolders["A"] != 1 {
		t.Errorf("expected peak holders 1, got %d", summary.PeakHolders["A"])
	}
	if summary.TotalWait != 10 || summary.MaxWait != 5 {
		t.Errorf("expected total wait 10 and max 5, got %v and %v", summary.TotalWait, summary.MaxWait)
	}
}
