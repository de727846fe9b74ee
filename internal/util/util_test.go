// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	exists, err := FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = FileExists(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.False(t, exists)

	// a directory is not a file
	_, err = FileExists(dir)
	assert.Error(t, err)
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	exists, err := DirectoryExists(dir)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = DirectoryExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)

	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	_, err = DirectoryExists(path)
	assert.Error(t, err)
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, CreateDirectoryIfNotExists(dir, 0755))
	assert.True(t, FileOrDirectoryExists(dir))
	// already exists is not an error
	require.NoError(t, CreateDirectoryIfNotExists(dir, 0755))
}

func TestUniqueAppend(t *testing.T) {
	s := []string{"a", "b"}
	s = UniqueAppend(s, "b")
	s = UniqueAppend(s, "c")
	assert.Equal(t, []string{"a", "b", "c"}, s)

	var empty []int
	assert.Equal(t, []int{1}, UniqueAppend(empty, 1))
}
