// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package signal

import "math"

// Statistics captures running statistics for the values of one signal.
// Absent (NaN) values count towards NValues but not NActual.
type Statistics struct {
	nValues int
	nActual int

	min float64
	max float64

	mean float64
	m2   float64 // running sum of squared deviations
}

func NewStatistics() *Statistics {
	s := &Statistics{}
	s.Reset()
	return s
}

func (s *Statistics) Push(value float64) {
	s.nValues++
	if math.IsNaN(value) {
		return
	}
	s.nActual++

	if value < s.min {
		s.min = value
	}
	if value > s.max {
		s.max = value
	}

	// Welford update.
	delta := value - s.mean
	s.mean += delta / float64(s.nActual)
	s.m2 += delta * (value - s.mean)
}

func (s *Statistics) Reset() {
	s.nValues = 0
	s.nActual = 0
	s.min = math.Inf(1)
	s.max = math.Inf(-1)
	s.mean = 0.0
	s.m2 = 0.0
}

func (s *Statistics) NValues() int {
	return s.nValues
}

func (s *Statistics) NActual() int {
	return s.nActual
}

func (s *Statistics) Min() float64 {
	if s.nActual == 0 {
		return math.NaN()
	}
	return s.min
}

func (s *Statistics) Max() float64 {
	if s.nActual == 0 {
		return math.NaN()
	}
	return s.max
}

func (s *Statistics) Mean() float64 {
	if s.nActual == 0 {
		return math.NaN()
	}
	return s.mean
}

func (s *Statistics) Variance() float64 {
	if s.nActual < 2 {
		return math.NaN()
	}
	return s.m2 / float64(s.nActual-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}
