// Command posture computes compliance posture outside the HTTP service.
// It shares the scoring, alert, escalation, and deadline code with the
// server and is intended for scheduled exports and operator checks.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var version = "dev"

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

type globalFlags struct {
	config string
	at     string
	pretty bool
}

func main() {
	if err := execute(newRootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// execute runs the command tree. Errors cobra raises before a command starts
// (unknown flags, wrong argument counts, missing required flags) are usage
// errors and carry exit code 2.
func execute(root *cobra.Command) error {
	started := false
	root.PersistentPreRun = func(*cobra.Command, []string) { started = true }

	cmd, err := root.ExecuteC()
	if err == nil {
		return nil
	}

	var ee *exitErr
	if errors.As(err, &ee) {
		return err
	}
	if !started {
		return codeError(2, "%s\nRun '%s --help' for usage.", err, cmd.CommandPath())
	}
	return err
}

func exitCode(err error) int {
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "posture",
		Short:         "Compute compliance posture for an organization",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", "config.toml", "Base configuration file")
	pf.StringVar(&flags.at, "at", "", "Evaluation instant in RFC 3339 (defaults to the current time)")
	pf.BoolVar(&flags.pretty, "pretty", true, "Indent JSON output")

	root.AddCommand(
		newScoreCmd(&flags),
		newAlertsCmd(&flags),
		newEscalationsCmd(&flags),
		newDeadlineCmd(&flags),
		newExportCmd(&flags),
		newOpenAPICmd(&flags),
	)

	return root
}

// evaluationTime resolves the --at flag. An empty value is the current UTC time.
func evaluationTime(at string) (time.Time, error) {
	if at == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, codeError(2, "invalid --at value %q: %s", at, err)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
