// Package testrun executes the module's test suite on behalf of the
// menu's Run Tests screen.
package testrun

import (
	"context"
	"errors"
	"os/exec"
)

// ErrGoToolchainMissing is reported when the go tool cannot be found on
// PATH; running the suite requires a Go installation.
var ErrGoToolchainMissing = errors.New("the go toolchain is not installed; install Go from https://go.dev/dl/ and ensure `go` is on PATH")

// Run executes `go test ./...` and returns the process exit code together
// with the combined output. A non-zero exit code is not an error; only
// failures to start the run are.
func Run(ctx context.Context) (int, string, error) {
	goTool, err := exec.LookPath("go")
	if err != nil {
		return 0, "", ErrGoToolchainMissing
	}

	cmd := exec.CommandContext(ctx, goTool, "test", "./...")
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), string(out), nil
		}
		return 0, string(out), err
	}

	return 0, string(out), nil
}
