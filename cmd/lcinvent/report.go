package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lcinvent/lcinvent/compress"
	"github.com/lcinvent/lcinvent/sexpr"
)

// reportParseError prints a caret-style parse error message pointing at the
// offending line and column.
func reportParseError(src string, err error) {
	var pe *sexpr.ParseError
	if !errors.As(err, &pe) {
		color.Red("unexpected error: %s", err)
		return
	}

	lines := strings.Split(src, "\n")
	if pe.Pos.Line <= 0 || pe.Pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pe.Pos.Line-1]
	caret := strings.Repeat(" ", maxInt(pe.Pos.Column-1, 0)) + "^"

	color.Red("syntax error at line %d, column %d:", pe.Pos.Line, pe.Pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Err)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// printResults renders one block per driver iteration: the accepted
// invention, its effect on every train/test program, and aggregate stats.
func printResults(w io.Writer, results []compress.StepResult) {
	if len(results) == 0 {
		color.New(color.FgYellow).Fprintln(w, "no positive-utility invention found")
		return
	}

	for _, step := range results {
		color.New(color.FgGreen, color.Bold).Fprintf(w, "iteration %d: %s (arity %d)\n", step.Iteration, step.InventionName, step.Arity)
		fmt.Fprintf(w, "  body: %s\n", step.InventionBody)

		for _, p := range step.TrainPrograms {
			fmt.Fprintf(w, "  train[%s]: cost %d -> %d, %d occurrence(s)\n",
				p.TaskName, p.OriginalCost, p.RewrittenCost, p.OccurrenceCount)
		}
		for _, p := range step.TestPrograms {
			fmt.Fprintf(w, "  test[%d]: cost %d -> %d, %d occurrence(s)\n",
				p.ProgramIndex, p.OriginalCost, p.RewrittenCost, p.OccurrenceCount)
		}

		if step.Stats != nil {
			fmt.Fprintf(w, "  compression ratio: %.3f\n", step.Stats.CompressionRatio)
		}
		fmt.Fprintf(w, "  duration: %s\n", step.Duration)
	}
}
