// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package profile

import "fmt"

// Matrix is one dense environment x SMP grid of metric values. Every cell
// always holds a value; missing input degrades to the metric's default, so
// downstream consumers can index rows and columns without gap handling.
// Counts carries the number of retained samples behind each cell, which is
// how a consumer distinguishes "no data" from a measured zero.
type Matrix struct {
	Name   string
	Values [][]float64 // [environment-1][smp-1]
	Counts [][]int     // [environment-1][smp-1]
}

// NewMatrix returns a zero-filled environments x smpCount matrix.
func NewMatrix(name string, environments int, smpCount int) *Matrix {
	values := make([][]float64, environments)
	counts := make([][]int, environments)
	for i := range environments {
		values[i] = make([]float64, smpCount)
		counts[i] = make([]int, smpCount)
	}
	return &Matrix{Name: name, Values: values, Counts: counts}
}

// Set stores a value and its sample count at the 1-based (env, smp) cell.
func (m *Matrix) Set(env int, smp int, value float64, count int) {
	m.Values[env-1][smp-1] = value
	m.Counts[env-1][smp-1] = count
}

// Get returns the value at the 1-based (env, smp) cell.
func (m *Matrix) Get(env int, smp int) float64 {
	return m.Values[env-1][smp-1]
}

// Count returns the sample count behind the 1-based (env, smp) cell.
func (m *Matrix) Count(env int, smp int) int {
	return m.Counts[env-1][smp-1]
}

// Row returns one environment's series across all SMP values.
func (m *Matrix) Row(env int) []float64 {
	return m.Values[env-1]
}

// EventSeries holds the per-call series of one (environment, SMP) cell in
// sample appearance order, for index-based views.
type EventSeries struct {
	NsPerCall  []float64
	Percentage []float64
}

// MatrixSet is the full output of one aggregation pass: one matrix per
// metric, all of identical shape, plus the per-cell event series.
type MatrixSet struct {
	Environments int
	SMPCount     int
	names        []string
	matrices     map[string]*Matrix
	series       [][]EventSeries // [environment-1][smp-1]
}

func NewMatrixSet(environments int, smpCount int, names []string) *MatrixSet {
	set := &MatrixSet{
		Environments: environments,
		SMPCount:     smpCount,
		names:        append([]string{}, names...),
		matrices:     make(map[string]*Matrix, len(names)),
		series:       make([][]EventSeries, environments),
	}
	for _, name := range names {
		set.matrices[name] = NewMatrix(name, environments, smpCount)
	}
	for i := range environments {
		set.series[i] = make([]EventSeries, smpCount)
	}
	return set
}

// Names returns the metric names in their fixed presentation order.
func (s *MatrixSet) Names() []string {
	return s.names
}

// Matrix returns the named matrix or an error when the name is unknown.
func (s *MatrixSet) Matrix(name string) (*Matrix, error) {
	m, ok := s.matrices[name]
	if !ok {
		return nil, fmt.Errorf("unknown matrix: %s", name)
	}
	return m, nil
}

// mustMatrix is for internal fill code where the name is from the fixed
// metric list and cannot be unknown.
func (s *MatrixSet) mustMatrix(name string) *Matrix {
	m, err := s.Matrix(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Series returns the event series of the 1-based (env, smp) cell.
func (s *MatrixSet) Series(env int, smp int) EventSeries {
	return s.series[env-1][smp-1]
}

func (s *MatrixSet) setSeries(env int, smp int, series EventSeries) {
	s.series[env-1][smp-1] = series
}
