package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/sysyrt"
	"github.com/verte-zerg/sysyrt/internal/timer"
)

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Sort an array read from stdin, timing the sort",
		Long: "demo is a small hosted program built on the runtime library.\n" +
			"It reads \"n a0 ... a(n-1)\", sorts the values between starttime and\n" +
			"stoptime, writes them back with putarray, and reports timers to stderr.",
		Args: cobra.NoArgs,
		RunE: runDemoCmd,
	}
	cmd.Flags().IntVar(&demoCapacity, "timer-capacity", timer.DefaultCapacity, "timer slots, including the total")
	cmd.Flags().IntVar(&demoElements, "max-elements", defaultDemoElements, "largest array accepted")
	return cmd
}

func runDemoCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "timer-capacity", &demoCapacity, fileCfg.Runtime.TimerCapacity)
	if demoCapacity < 2 {
		return fmt.Errorf("--timer-capacity must be >= 2")
	}
	if demoElements < 0 {
		return fmt.Errorf("--max-elements must be >= 0")
	}

	var progErr error
	status := sysyrt.Run(func() int32 {
		progErr = sortProgram(make([]int32, demoElements))
		if progErr != nil {
			return 1
		}
		return 0
	}, sysyrt.WithTimerCapacity(demoCapacity))
	if progErr != nil {
		return progErr
	}
	if status != 0 {
		return &exitStatusError{program: "demo", code: status}
	}
	return nil
}

func sortProgram(buf []int32) error {
	n, err := sysyrt.Getarray(buf)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("negative element count %d", n)
	}
	values := buf[:n]

	sysyrt.Starttime()
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	if err := sysyrt.Stoptime(); err != nil {
		return err
	}

	if err := sysyrt.Putarray(n, values); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
