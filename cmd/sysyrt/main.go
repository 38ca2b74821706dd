// Package main provides the CLI entrypoint for sysyrt.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/sysyrt/internal/config"
	"github.com/verte-zerg/sysyrt/internal/generator"
	"github.com/verte-zerg/sysyrt/internal/historyui"
	"github.com/verte-zerg/sysyrt/internal/model"
	"github.com/verte-zerg/sysyrt/internal/recorder"
	"github.com/verte-zerg/sysyrt/internal/stats"
	"github.com/verte-zerg/sysyrt/internal/store"
	"github.com/verte-zerg/sysyrt/internal/timer"
)

const (
	defaultHistoryLast  = 0
	defaultHistoryTop   = 5
	defaultTrendWindow  = 1
	defaultGenCount     = 16
	defaultGenLimit     = 1000
	defaultDemoElements = 1 << 16
)

var (
	dbPath string

	recordSave bool
	recordDir  string

	historyProgram string
	historySince   string
	historyLast    int
	historyTop     int
	historyJSON    bool
	historyPlain   bool

	genCount    int
	genLimit    int32
	genSeed     int64
	genNegative bool

	demoCapacity int
	demoElements int
)

// exitStatusError carries a hosted program's exit status out of a command.
type exitStatusError struct {
	program string
	code    int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.program, e.code)
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitStatusError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sysyrt",
		Short:         "Runtime host and timing history for compiled SysY programs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "run history database")

	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &dbPath, fileCfg.History.DBPath)
	return fileCfg, nil
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}, nil
}

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record [flags] -- program [args...]",
		Short: "Run a compiled program and record its timer report",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRecordCmd,
	}
	cmd.Flags().BoolVar(&recordSave, "save", true, "store the run in the history database")
	cmd.Flags().StringVar(&recordDir, "dir", "", "working directory for the program")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func runRecordCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "save", &recordSave, fileCfg.History.Record)

	res, err := recorder.Record(cmd.Context(), recorder.Command{
		Path:   args[0],
		Args:   args[1:],
		Dir:    recordDir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	if !res.HasReport {
		logErrf("%s printed no TOTAL line; total computed from %d intervals\n", args[0], len(res.Intervals))
	}
	logErrf("exit %d, timed %s, wall %s\n",
		res.Run.ExitCode, stats.FormatMicros(res.Run.TotalUs), stats.FormatMicros(res.Run.WallUs))

	if recordSave {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()
		id, err := st.InsertRun(context.Background(), res.Run, res.Timers())
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		logErrf("saved run %d\n", id)
	}
	if res.Run.ExitCode != 0 {
		return &exitStatusError{program: args[0], code: res.Run.ExitCode}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyProgram, "program", "", "program filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N runs")
	cmd.Flags().IntVar(&historyTop, "top", defaultHistoryTop, "number of slowest runs to list")
	cmd.Flags().BoolVar(&historyJSON, "json", false, "print runs as JSON")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print text instead of the interactive view")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)
	applyIntConfig(cmd, "top", &historyTop, fileCfg.History.Top)

	cfg := model.HistoryConfig{
		Program: historyProgram,
		Last:    historyLast,
		Top:     historyTop,
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if cfg.Last < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if cfg.Top < 0 {
		return fmt.Errorf("--top must be >= 0")
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	interactive := !historyJSON && !historyPlain && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		program := tea.NewProgram(historyui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run history TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if historyJSON {
		return stats.RenderJSON(out, report)
	}
	if err := stats.RenderSummary(out, report.Runs); err != nil {
		return err
	}
	if err := stats.RenderRunTable(out, report.Runs); err != nil {
		return err
	}
	if err := stats.RenderTrend(out, report.Runs, defaultTrendWindow, 0); err != nil {
		return err
	}
	if len(report.Slow) > 0 {
		if _, err := fmt.Fprintln(out, "Slowest"); err != nil {
			return err
		}
		for _, run := range report.Slow {
			if err := stats.RenderTimers(out, run, report.Timers[run.ID]); err != nil {
				return err
			}
		}
	}
	return nil
}

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random array input",
		Args:  cobra.NoArgs,
		RunE:  runGenCmd,
	}
	cmd.Flags().IntVar(&genCount, "n", defaultGenCount, "number of elements")
	cmd.Flags().Int32Var(&genLimit, "max", defaultGenLimit, "largest absolute value")
	cmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().BoolVar(&genNegative, "negative", false, "allow negative values")
	return cmd
}

func runGenCmd(cmd *cobra.Command, _ []string) error {
	if genCount < 0 {
		return fmt.Errorf("--n must be >= 0")
	}
	if genLimit < 0 {
		return fmt.Errorf("--max must be >= 0")
	}
	gen := generator.New()
	if genSeed != 0 {
		gen = generator.NewSeeded(genSeed)
	}
	values := gen.Array(genCount, genLimit, genNegative)
	if err := generator.WriteArray(cmd.OutOrStdout(), values); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sysyrt configuration
# Uncomment a value to enable it. CLI flags override config values.

[runtime]
# timer-capacity = %d      # Timer slots for the demo program, including the total

[history]
# db = %q
# record = true            # Save runs made with "sysyrt record"
# last = %d                # Limit history to the last N runs (0 = all)
# top = %d                 # Slowest runs listed by "sysyrt history --plain"
`,
		timer.DefaultCapacity,
		config.DefaultDBPath(),
		defaultHistoryLast,
		defaultHistoryTop,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
