package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTimes_Waves(t *testing.T) {
	// GIVEN three teams per wave every 15 minutes from 08:00
	s := StartSpec{Policy: PolicyWaves, First: 480, PerWave: 3, Interval: 15}

	times, err := s.StartTimes(7)

	require.NoError(t, err)
	assert.Equal(t, []float64{480, 480, 480, 495, 495, 495, 510}, times)
}

func TestStartTimes_Waves_ZeroTeams(t *testing.T) {
	s := StartSpec{Policy: PolicyWaves, First: 480, PerWave: 3, Interval: 15}

	times, err := s.StartTimes(0)

	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestStartTimes_Cron(t *testing.T) {
	// GIVEN two teams at every quarter hour between 22:00 and 00:59
	s := StartSpec{Policy: PolicyCron, First: 22*60 + 10, PerWave: 2, Cron: "*/15 22,23,0 * * *"}

	times, err := s.StartTimes(9)

	// THEN waves start at the first activation at or after 22:10 and continue past midnight
	require.NoError(t, err)
	assert.Equal(t, []float64{
		1335, 1335, // 22:15
		1350, 1350, // 22:30
		1365, 1365, // 22:45
		1380, 1380, // 23:00
		1395, // 23:15
	}, times)

	late, err := s.StartTimes(16)
	require.NoError(t, err)
	assert.Equal(t, 1440.0, late[14]) // 24:00
}

func TestStartTimes_Cron_FirstMatchesExactly(t *testing.T) {
	s := StartSpec{Policy: PolicyCron, First: 480, PerWave: 1, Cron: "0 * * * *"}

	times, err := s.StartTimes(3)

	require.NoError(t, err)
	assert.Equal(t, []float64{480, 540, 600}, times)
}

func TestStartTimes_Cron_InvalidExpression(t *testing.T) {
	s := StartSpec{Policy: PolicyCron, PerWave: 1, Cron: "every quarter"}

	_, err := s.StartTimes(1)

	assert.ErrorContains(t, err, "start.cron")
}

func TestStartTimes_Fixed(t *testing.T) {
	s := StartSpec{Policy: PolicyFixed, Times: []ClockTime{600, 480, 540}}

	times, err := s.StartTimes(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{600, 480}, times)

	_, err = s.StartTimes(4)
	assert.Error(t, err)
}

func TestStartTimes_UnknownPolicy(t *testing.T) {
	_, err := StartSpec{Policy: "lottery"}.StartTimes(1)
	assert.ErrorContains(t, err, "unknown start policy")
}
