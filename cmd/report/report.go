// Package report is a subcommand of the root command. It generates reports
// from the timer logs and summary tables of one profiling campaign.
package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"semustat/internal/common"
	"semustat/internal/profile"
	"semustat/internal/report"
	"semustat/internal/util"
)

const cmdName = "report"

var examples = []string{
	fmt.Sprintf("  Report for the current directory:      $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Report for a profile directory:        $ %s %s --profile ./profile-2 --environments 7 --smp 32", common.AppName, cmdName),
	fmt.Sprintf("  Timing tables only, html and xlsx:     $ %s %s --timing --format html,xlsx", common.AppName, cmdName),
	fmt.Sprintf("  With environment labels:               $ %s %s --envs environments.yaml", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Generate metric reports for a profiling campaign",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

// flag vars
var (
	flagAll     bool
	flagBoot    bool
	flagSummary bool
	flagTiming  bool
	flagStats   bool
)

// flag names
const (
	flagAllName     = "all"
	flagBootName    = "boot"
	flagSummaryName = "summary"
	flagTimingName  = "timing"
	flagStatsName   = "stats"
)

// categories maps flag names to tables that will be included in report
var categories = []common.Category{
	{FlagName: flagBootName, FlagVar: &flagBoot, Help: "Whole-log boot metrics", TableNames: []string{
		report.BootTimeTableName, report.TimesCalledTableName, report.OffsetTableName}},
	{FlagName: flagSummaryName, FlagVar: &flagSummary, Help: "Summary table metrics", TableNames: []string{
		report.RealBootTimeTableName, report.TimesCalledClocksourceTableName, report.PredictedNsPerCallTableName,
		report.PredictedBootTimeTableName, report.ScaleFactorTableName, report.TotalClocksourceNsTableName,
		report.SummaryPercentageTableName}},
	{FlagName: flagTimingName, FlagVar: &flagTiming, Help: "Per-call timing metrics", TableNames: []string{
		report.AvgRealNsPerCallTableName, report.AvgRealPercentageTableName, report.DiffNsPerCallTableName,
		report.DiffBootTimeTableName}},
	{FlagName: flagStatsName, FlagVar: &flagStats, Help: "Event statistics and sample counts", TableNames: []string{
		report.EventStatisticsTableName, report.SampleCountsTableName}},
}

func init() {
	// set up category flags
	for _, cat := range categories {
		Cmd.Flags().BoolVar(cat.FlagVar, cat.FlagName, cat.DefaultValue, cat.Help)
	}
	Cmd.Flags().BoolVar(&flagAll, flagAllName, true, "include all table categories")
	Cmd.Flags().StringSliceVar(&common.FlagFormat, common.FlagFormatName, []string{report.FormatAll}, fmt.Sprintf("comma separated list of formats: %s", strings.Join(append([]string{report.FormatAll}, report.FormatOptions...), ", ")))
	common.AddProfileFlags(Cmd)
}

func validateFlags(cmd *cobra.Command, args []string) error {
	for _, format := range common.FlagFormat {
		if format != report.FormatAll && !slices.Contains(report.FormatOptions, format) {
			return fmt.Errorf("format options are %s", strings.Join(append([]string{report.FormatAll}, report.FormatOptions...), ", "))
		}
	}
	return common.ValidateProfileFlags(cmd)
}

// selectedTableNames returns the table names chosen through the category
// flags, in report order. When no category flag was set, all tables are
// included.
func selectedTableNames(cmd *cobra.Command) []string {
	anyCategory := false
	for _, cat := range categories {
		if cmd.Flags().Changed(cat.FlagName) {
			anyCategory = true
			break
		}
	}
	if !anyCategory && flagAll {
		return report.AllTableNames()
	}
	var names []string
	for _, cat := range categories {
		if *cat.FlagVar {
			for _, name := range cat.TableNames {
				names = util.UniqueAppend(names, name)
			}
		}
	}
	if len(names) == 0 {
		return report.AllTableNames()
	}
	return names
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
	tables, err := report.TablesByName(selectedTableNames(cmd))
	if err != nil {
		return err
	}
	allTableValues, err := report.ProcessTables(tables, set, envLabels)
	if err != nil {
		return err
	}
	formats := common.FlagFormat
	if slices.Contains(formats, report.FormatAll) {
		formats = report.FormatOptions
	}
	if err = util.CreateDirectoryIfNotExists(appContext.OutputDir, 0755); err != nil {
		return err
	}
	campaignName := filepath.Base(cfg.BaseDir)
	if campaignName == "." || campaignName == string(os.PathSeparator) {
		campaignName = common.AppName
	}
	var filesCreated []string
	for _, format := range formats {
		out, createErr := report.Create(format, allTableValues, campaignName)
		if createErr != nil {
			return createErr
		}
		reportPath := filepath.Join(appContext.OutputDir, campaignName+"."+format)
		if err = os.WriteFile(reportPath, out, 0644); err != nil { // #nosec G306
			return fmt.Errorf("failed to write report file: %w", err)
		}
		slog.Info("wrote report", slog.String("path", reportPath))
		filesCreated = append(filesCreated, reportPath)
	}
	// when printing to an interactive terminal, show the text rendering
	if term.IsTerminal(int(os.Stdout.Fd())) && slices.Contains(formats, report.FormatTxt) {
		out, createErr := report.Create(report.FormatTxt, allTableValues, campaignName)
		if createErr == nil {
			fmt.Print(string(out))
		}
	}
	fmt.Println("Report files:")
	for _, file := range filesCreated {
		fmt.Printf("  %s\n", file)
	}
	return nil
}
