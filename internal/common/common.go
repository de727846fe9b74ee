// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package common defines data structures and functions that are used by
// multiple application commands, e.g., report and plot.
package common

import (
	"os"
	"path/filepath"
)

var AppName = filepath.Base(os.Args[0])

// AppContext represents the application context that can be accessed from all commands.
type AppContext struct {
	Timestamp   string // Timestamp is the application startup time, used in output file naming.
	OutputDir   string // OutputDir is the directory where the application will write output files.
	LogFilePath string // LogFilePath is the path of the application log file, empty when logging to stdout.
	Version     string // Version is the version of the application.
	Debug       bool   // Debug indicates whether debug logging is enabled.
}

type Flag struct {
	Name string
	Help string
}

// Category associates a report category flag with the tables it selects.
type Category struct {
	FlagName     string
	TableNames   []string
	FlagVar      *bool
	DefaultValue bool
	Help         string
}

var FlagFormat []string

const FlagFormatName = "format"
