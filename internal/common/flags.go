// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package common

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"semustat/internal/profile"
	"semustat/internal/rawlog"
	"semustat/internal/util"
)

// profile input flags shared by commands that run the aggregation pipeline
var (
	flagProfileDir   string
	flagEnvironments int
	flagSMP          int
	flagThreshold    float64
	flagEnvsFile     string
	flagStrict       bool
)

// profile input flag names
const (
	flagProfileDirName   = "profile"
	flagEnvironmentsName = "environments"
	flagSMPName          = "smp"
	flagThresholdName    = "threshold"
	flagEnvsFileName     = "envs"
	flagStrictName       = "strict"
)

var profileFlags = []Flag{
	{Name: flagProfileDirName, Help: "base directory that holds the summary tables and log directories"},
	{Name: flagEnvironmentsName, Help: "number of environments, i.e., host machines, in the profile"},
	{Name: flagSMPName, Help: "highest SMP (hart count) value in the profile"},
	{Name: flagThresholdName, Help: "discard per-call samples whose total exceeds this many nanoseconds"},
	{Name: flagEnvsFileName, Help: "file with environment labels. See environments.yaml for format."},
	{Name: flagStrictName, Help: "warn about duplicate SMP rows in summary tables"},
}

func AddProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProfileDir, flagProfileDirName, ".", profileFlags[0].Help)
	cmd.Flags().IntVar(&flagEnvironments, flagEnvironmentsName, 7, profileFlags[1].Help)
	cmd.Flags().IntVar(&flagSMP, flagSMPName, 32, profileFlags[2].Help)
	cmd.Flags().Float64Var(&flagThreshold, flagThresholdName, rawlog.DefaultOutlierThresholdNs, profileFlags[3].Help)
	cmd.Flags().StringVar(&flagEnvsFile, flagEnvsFileName, "", profileFlags[4].Help)
	cmd.Flags().BoolVar(&flagStrict, flagStrictName, false, profileFlags[5].Help)
}

func ValidateProfileFlags(cmd *cobra.Command) error {
	if flagEnvironments < 1 {
		return fmt.Errorf("--%s must be at least 1", flagEnvironmentsName)
	}
	if flagSMP < 1 {
		return fmt.Errorf("--%s must be at least 1", flagSMPName)
	}
	if flagThreshold <= 0 {
		return fmt.Errorf("--%s must be positive", flagThresholdName)
	}
	if info, err := os.Stat(flagProfileDir); err != nil || !info.IsDir() {
		return fmt.Errorf("profile directory %s does not exist", flagProfileDir)
	}
	if flagEnvsFile != "" {
		exists, err := util.FileExists(flagEnvsFile)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("environments file %s does not exist", flagEnvsFile)
		}
	}
	return nil
}

// GetProfileConfig builds the pipeline configuration from the profile flags.
func GetProfileConfig() profile.Config {
	cfg := profile.NewConfig(flagProfileDir, flagEnvironments, flagSMP)
	cfg.OutlierThresholdNs = flagThreshold
	cfg.Strict = flagStrict
	return cfg
}

// GetEnvironmentLabels loads the display labels for environments
// 1..flagEnvironments, from the environments file when one was given.
func GetEnvironmentLabels() ([]string, error) {
	return LoadEnvironmentLabels(flagEnvsFile, flagEnvironments)
}
