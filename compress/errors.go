// Package compress implements the driver loop: repeatedly search a corpus
// for the best-utility invention, materialize and apply it, and report one
// StepResult per iteration, until no positive-utility candidate remains.
package compress

import "errors"

var ErrNoPrograms = errors.New("compress: no training programs supplied")
var ErrIngestionViolation = errors.New("compress: root program has free vars or invention vars")
var ErrTaskNameMismatch = errors.New("compress: taskNames length does not match trainPrograms length")
