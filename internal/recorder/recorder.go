// Package recorder runs a compiled program and captures its timer report.
package recorder

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	qerrors "github.com/qiniu/x/errors"

	"github.com/verte-zerg/sysyrt/internal/model"
	"github.com/verte-zerg/sysyrt/internal/timer"
)

// Command describes a program to record. Nil streams default to the
// process's own standard streams.
type Command struct {
	Path   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Result is a finished run together with its parsed timer report.
type Result struct {
	Run       model.Run
	Intervals []timer.Slot
	Total     timer.Slot
	HasReport bool
}

// Timers converts the parsed intervals into storable records.
func (r Result) Timers() []model.TimerRecord {
	out := make([]model.TimerRecord, len(r.Intervals))
	for i, s := range r.Intervals {
		out[i] = model.TimerRecord{
			Index:   i + 1,
			Hours:   s.Hours,
			Minutes: s.Minutes,
			Seconds: s.Seconds,
			Micros:  s.Micros,
		}
	}
	return out
}

// Record runs the command to completion. Standard error is copied through
// unchanged while report lines are collected. A non-zero exit status is
// recorded in the result rather than returned as an error.
func Record(ctx context.Context, c Command) (Result, error) {
	if c.Path == "" {
		return Result{}, errors.New("no program given")
	}
	stdin, stdout, stderr := c.Stdin, c.Stdout, c.Stderr
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	pipe, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, qerrors.NewWith(err, `cmd.StderrPipe()`, -2, "exec.(*Cmd).StderrPipe")
	}

	var res Result
	res.Run.Program = c.Path
	res.Run.Args = append([]string(nil), c.Args...)
	res.Run.StartedAt = time.Now()
	if err := cmd.Start(); err != nil {
		return Result{}, qerrors.NewWith(err, `cmd.Start()`, -2, "exec.(*Cmd).Start", c.Path, c.Args)
	}

	scanErr := scanReport(pipe, stderr, &res)
	waitErr := cmd.Wait()
	res.Run.EndedAt = time.Now()
	res.Run.WallUs = res.Run.EndedAt.Sub(res.Run.StartedAt).Microseconds()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return Result{}, qerrors.NewWith(waitErr, `cmd.Wait()`, -2, "exec.(*Cmd).Wait", c.Path)
		}
		res.Run.ExitCode = exitErr.ExitCode()
	}
	if scanErr != nil {
		return Result{}, scanErr
	}

	if !res.HasReport {
		for _, s := range res.Intervals {
			res.Total.Add(s)
		}
	}
	res.Run.TotalUs = res.Total.TotalMicros()
	return res, nil
}

func scanReport(r io.Reader, passthrough io.Writer, res *Result) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if _, werr := io.WriteString(passthrough, line); werr != nil {
				// Keep draining so the child never blocks on a full pipe.
				passthrough = io.Discard
			}
			if parsed, ok := timer.ParseLine(line); ok {
				if parsed.Total {
					res.Total = parsed.Slot
					res.HasReport = true
				} else {
					res.Intervals = append(res.Intervals, parsed.Slot)
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return qerrors.NewWith(err, `br.ReadString('\n')`, -2, "bufio.(*Reader).ReadString")
		}
	}
}
