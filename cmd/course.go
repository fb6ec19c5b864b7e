package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flowsim/flowsim/sim/report"
	"github.com/flowsim/flowsim/sim/scenario"
)

// courseCmd prints every course of a scenario with its total distance
var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Print the courses of a scenario",
	Run: func(cmd *cobra.Command, args []string) {
		_, sc, err := loadScenario(scenarioPath, scenario.Overrides{})
		if err != nil {
			logrus.Fatalf("Loading scenario failed: %v", err)
		}
		for _, c := range sc.Courses {
			fmt.Fprintln(cmd.OutOrStdout(), report.DescribeCourse(c, teamsOnCourse(sc, c)))
		}
	},
}

// validateCmd loads and validates a scenario without simulating it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		f, sc, err := loadScenario(scenarioPath, scenario.Overrides{})
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d activities, %d courses, %d teams, %d runs\n",
			f.Name, len(sc.Activities), len(sc.Courses), len(sc.Teams), f.EngineConfig().Runs)
	},
}
