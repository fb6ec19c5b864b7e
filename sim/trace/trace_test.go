package trace

import (
	"testing"
)

func TestSimulationTrace_Record_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN an arrival record is recorded
	st.Record(EventRecord{Run: 0, Time: 480, Kind: KindArrive, Team: "Team 0 (V)", Activity: "Post 1", QueueLen: 2})

	// THEN the trace contains one record with correct data
	if len(st.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(st.Records))
	}
	if st.Records[0].Team != "Team 0 (V)" {
		t.Errorf("expected team Team 0 (V), got %s", st.Records[0].Team)
	}
	if st.Records[0].QueueLen != 2 {
		t.Errorf("expected queue length 2, got %d", st.Records[0].QueueLen)
	}
}

func TestSimulationTrace_ForRun_FiltersAndPreservesOrder(t *testing.T) {
	// GIVEN records from two runs interleaved
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.Record(EventRecord{Run: 0, Time: 1, Kind: KindStart, Team: "a"})
	st.Record(EventRecord{Run: 1, Time: 1, Kind: KindStart, Team: "b"})
	st.Record(EventRecord{Run: 0, Time: 2, Kind: KindFinish, Team: "a"})

	// WHEN filtered by run
	run0 := st.ForRun(0)

	// THEN only run 0 records remain, in insertion order
	if len(run0) != 2 {
		t.Fatalf("expected 2 records, got %d", len(run0))
	}
	if run0[0].Kind != KindStart || run0[1].Kind != KindFinish {
		t.Errorf("order not preserved: %s, %s", run0[0].Kind, run0[1].Kind)
	}
}

func TestSimulationTrace_ForActivity_FiltersByRunAndActivity(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.Record(EventRecord{Run: 0, Kind: KindArrive, Activity: "A"})
	st.Record(EventRecord{Run: 0, Kind: KindArrive, Activity: "B"})
	st.Record(EventRecord{Run: 1, Kind: KindArrive, Activity: "A"})
	st.Record(EventRecord{Run: 0, Kind: KindGrant, Activity: "A"})

	got := st.ForActivity(0, "A")
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[1].Kind != KindGrant {
		t.Errorf("expected grant second, got %s", got[1].Kind)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"events", true},
		{"decisions", false},
		{"verbose", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
