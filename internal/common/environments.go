// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package common

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Environment describes one test environment, i.e., one host machine the
// emulator boot runs were captured on. See environments.yaml for the file
// format.
type Environment struct {
	ID    int    `yaml:"id"`
	Label string `yaml:"label"`
}

type environmentsFile struct {
	Environments []Environment `yaml:"environments"`
}

// LoadEnvironmentLabels returns one display label per environment 1..count.
// When path is empty, or the file does not describe an environment, its
// label defaults to "Env <n>". Label entries with ids outside 1..count are
// ignored.
func LoadEnvironmentLabels(path string, count int) ([]string, error) {
	labels := make([]string, count)
	for i := range count {
		labels[i] = fmt.Sprintf("Env %d", i+1)
	}
	if path == "" {
		return labels, nil
	}
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read environments file: %w", err)
	}
	var parsed environmentsFile
	if err = yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse environments file: %w", err)
	}
	for _, env := range parsed.Environments {
		if env.ID < 1 || env.ID > count || env.Label == "" {
			continue
		}
		labels[env.ID-1] = fmt.Sprintf("%d: %s", env.ID, env.Label)
	}
	return labels, nil
}
