package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/offshore/date"
)

// Environment variables read as flag defaults, and passed to extensions.
const (
	EnvPositionsFile = "CVMOFF_POSITIONS_FILE"
	EnvFundsFile     = "CVMOFF_FUNDS_FILE"
	EnvManagersFile  = "CVMOFF_MANAGERS_FILE"
	EnvConfig        = "CVMOFF_CONFIG"
	EnvVerbose       = "CVMOFF_VERBOSE"
)

// RunExtension attempts to find and execute an external cvmoff-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	return runExtension(subcommand, args, os.Stdin, os.Stdout, os.Stderr)
}

func runExtension(subcommand string, args []string, stdin io.Reader, stdout, stderr io.Writer) (bool, int) {
	externalCmdName := "cvmoff-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		if *Verbose {
			log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		}
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	env, err := extensionEnv(date.Today())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return true, 2
	}
	cmd.Env = append(os.Environ(), env...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv passes the resolved global flags to an extension, so that it
// reads the same files as cvmoff would.
func extensionEnv(today date.Date) ([]string, error) {
	files, err := resolveFiles(today)
	if err != nil {
		return nil, err
	}
	return []string{
		EnvPositionsFile + "=" + files.Positions,
		EnvFundsFile + "=" + files.Funds,
		EnvManagersFile + "=" + files.Managers,
		EnvConfig + "=" + configPath(),
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}, nil
}
