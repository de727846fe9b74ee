// Package plot is a subcommand of the root command. It renders PNG
// comparison charts from the metrics of one profiling campaign.
package plot

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"semustat/internal/chart"
	"semustat/internal/common"
	"semustat/internal/profile"
	"semustat/internal/util"
)

const cmdName = "plot"

var examples = []string{
	fmt.Sprintf("  Comparison charts for a profile:   $ %s %s --profile ./profile-2", common.AppName, cmdName),
	fmt.Sprintf("  Include per-cell event charts:     $ %s %s --profile ./profile-2 --events", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Render PNG comparison charts for a profiling campaign",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var flagEvents bool

const flagEventsName = "events"

func init() {
	Cmd.Flags().BoolVar(&flagEvents, flagEventsName, false, "also render per-cell event-index charts")
	common.AddProfileFlags(Cmd)
}

func validateFlags(cmd *cobra.Command, args []string) error {
	return common.ValidateProfileFlags(cmd)
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext := cmd.Parent().Context().Value(common.AppContext{}).(common.AppContext)
	cfg := common.GetProfileConfig()
	envLabels, err := common.GetEnvironmentLabels()
	if err != nil {
		return err
	}
	set, err := profile.BuildMatrices(cfg)
	if err != nil {
		return err
	}
	if err = util.CreateDirectoryIfNotExists(appContext.OutputDir, 0755); err != nil {
		return err
	}
	chartsDir := filepath.Join(appContext.OutputDir, "comparison_plots")
	files, err := chart.RenderComparisonCharts(set, envLabels, chartsDir)
	if err != nil {
		return err
	}
	if flagEvents {
		eventFiles, eventsErr := chart.RenderEventCharts(set, envLabels, chartsDir)
		if eventsErr != nil {
			return eventsErr
		}
		files = append(files, eventFiles...)
	}
	slog.Info("wrote charts", slog.Int("count", len(files)), slog.String("dir", chartsDir))
	fmt.Printf("Chart files written to %s:\n", chartsDir)
	for _, file := range files {
		fmt.Printf("  %s\n", file)
	}
	return nil
}
