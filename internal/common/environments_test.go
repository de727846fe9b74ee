// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentLabelsDefaults(t *testing.T) {
	labels, err := LoadEnvironmentLabels("", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Env 1", "Env 2", "Env 3"}, labels)
}

func TestLoadEnvironmentLabels(t *testing.T) {
	content := `environments:
  - id: 1
    label: bare metal
  - id: 3
    label: container
  - id: 9
    label: out of range
  - id: 2
`
	path := filepath.Join(t.TempDir(), "environments.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	labels, err := LoadEnvironmentLabels(path, 3)
	require.NoError(t, err)
	// unknown ids are dropped, entries without a label keep the default
	assert.Equal(t, []string{"1: bare metal", "Env 2", "3: container"}, labels)
}

func TestLoadEnvironmentLabelsErrors(t *testing.T) {
	_, err := LoadEnvironmentLabels(filepath.Join(t.TempDir(), "missing.yaml"), 2)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "environments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environments: {not a list}\n"), 0644))
	_, err = LoadEnvironmentLabels(path, 2)
	assert.Error(t, err)
}
