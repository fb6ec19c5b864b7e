package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsim/flowsim/sim"
	"github.com/flowsim/flowsim/sim/internal/testutil"
)

func TestLoad_TwoActivityScenario(t *testing.T) {
	// GIVEN the reference two-activity scenario on disk
	path := testutil.WriteScenario(t, testutil.TwoActivityScenario)

	// WHEN loading it
	f, err := Load(path)

	// THEN every section is decoded
	require.NoError(t, err)
	assert.Equal(t, "two-activity", f.Name)
	assert.Equal(t, 1, f.Runs)
	assert.Equal(t, int64(7), f.Seed)
	require.NotNil(t, f.Horizon)
	assert.Equal(t, 100.0, f.Horizon.Minutes())
	require.Len(t, f.Activities, 2)
	assert.Equal(t, Capacity(1), f.Activities[0].Capacity)
	require.NotNil(t, f.Activities[0].Min)
	assert.Equal(t, 5.0, *f.Activities[0].Min)
	require.Len(t, f.Courses, 1)
	assert.Equal(t, []Step{{Distance: 0}, {Activity: "A"}, {Activity: "B"}}, f.Courses[0].Steps)
	require.Len(t, f.Categories, 1)
	assert.Equal(t, "uniform", f.Categories[0].Speed.Model)
	assert.Equal(t, 2, f.Categories[0].Start.PerWave)
	assert.NoError(t, f.Validate())
}

func TestLoad_UnknownField_Rejected(t *testing.T) {
	path := testutil.WriteScenario(t, `
name: typo
runz: 3
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runz")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/scenario.yaml")
	assert.ErrorContains(t, err, "reading scenario")
}

func TestParse_ClockTimesAndCapacities(t *testing.T) {
	f, err := Parse([]byte(`
name: clocks
horizon: "30:00"
activities:
  - name: Start
    capacity: unlimited
  - name: "7"
    capacity: 3
    min: 1
    max: 2
courses:
  V: [Start, 1.5, "7", 2]
  S: [Start, 0, "7"]
categories: []
`))
	require.NoError(t, err)
	assert.Equal(t, 1800.0, f.Horizon.Minutes())
	assert.Equal(t, Capacity(sim.UnlimitedCapacity), f.Activities[0].Capacity)
	assert.Nil(t, f.Activities[0].Min)
	require.Len(t, f.Courses, 2)
	assert.Equal(t, "V", f.Courses[0].Name)
	assert.Equal(t, "S", f.Courses[1].Name)
	assert.Equal(t, []Step{{Activity: "Start"}, {Distance: 1.5}, {Activity: "7"}, {Distance: 2}}, f.Courses[0].Steps)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad capacity", "name: x\nactivities:\n  - name: A\n    capacity: lots\n"},
		{"bad clock", "name: x\nhorizon: \"25:61\"\n"},
		{"duplicate course", "name: x\ncourses:\n  V: [A]\n  V: [B]\n"},
		{"course not a list", "name: x\ncourses:\n  V: A\n"},
		{"nested step", "name: x\ncourses:\n  V: [[1, 2]]\n"},
		{"courses not a mapping", "name: x\ncourses: [A, B]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"08:00", 480},
		{"8:05", 485},
		{"30:00", 1800},
		{"00:00", 0},
		{"90", 90},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	inf, err := ParseClock("unlimited")
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf, 1))

	for _, bad := range []string{"", "ab:00", "10:60", "-1:00", "10:xx"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestFile_Validate_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *File)
		entity string
	}{
		{"no name", func(f *File) { f.Name = "" }, "scenario"},
		{"negative runs", func(f *File) { f.Runs = -1 }, "scenario"},
		{"negative horizon", func(f *File) { h := ClockTime(-5); f.Horizon = &h }, "scenario"},
		{"bad watermark", func(f *File) { f.Watermark = "late" }, "scenario"},
		{"min without max", func(f *File) { f.Activities[0].Max = nil }, `activity "A"`},
		{"unknown finish", func(f *File) { f.Finish = "Mål" }, "scenario"},
		{"wrong finish", func(f *File) { f.Finish = "A" }, `course "main"`},
		{"unknown activity", func(f *File) { f.Courses[0].Steps[1].Activity = "Z" }, `course "main"`},
		{"no categories", func(f *File) { f.Categories = nil }, "scenario"},
		{"unknown course", func(f *File) { f.Categories[0].Course = "other" }, `category "X"`},
		{"negative teams", func(f *File) { f.Categories[0].Teams = -1 }, `category "X"`},
		{"unknown speed model", func(f *File) { f.Categories[0].Speed.Model = "gamma" }, `category "X"`},
		{"invalid speed", func(f *File) { f.Categories[0].Speed.Min = 0 }, `category "X"`},
		{"unknown start policy", func(f *File) { f.Categories[0].Start.Policy = "random" }, `category "X"`},
		{"zero per wave", func(f *File) { f.Categories[0].Start.PerWave = 0 }, `category "X"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(testutil.TwoActivityScenario))
			require.NoError(t, err)
			tt.mutate(f)

			err = f.Validate()

			var ce *sim.ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.entity, ce.Entity)
		})
	}
}
