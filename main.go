package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mordilloSan/go-debuglog/logger"
	"github.com/spf13/cobra"
)

// errFatalLogged makes the process exit 1 after the demo emitted a fatal message.
var errFatalLogged = errors.New("fatal message logged")

var (
	noTimestamp bool
	silent      bool
	archiveDir  string
)

var (
	rootCmd = &cobra.Command{
		Use:   "go-debuglog [logfile]",
		Short: "Write sample debug output, optionally mirrored to a log file",
		Long: "Writes info, error and fatal sample lines. With a logfile argument the\n" +
			"lines are also appended to that file, which is replaced first.",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runDemo,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	archiveCmd = &cobra.Command{
		Use:   "archive <logfile>",
		Short: "Copy a log file into an ERR_<DDMMYYYY_HHMM>.txt report and remove it",
		Args:  cobra.ExactArgs(1),
		RunE:  runArchive,
	}
	cleanupCmd = &cobra.Command{
		Use:   "cleanup <logfile>",
		Short: "Remove a log file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCleanup,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&noTimestamp, "no-timestamp", false, "Omit the HH:MM:SS prefix from file lines")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "Suppress informational console output")

	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().StringVar(&archiveDir, "dir", "", "Directory for the error report (default: working directory)")

	rootCmd.AddCommand(cleanupCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Config{
		DisableTimestamp: noTimestamp,
		Silent:           func() bool { return silent },
	})
	if len(args) == 1 {
		if err := logger.EnableLogging(true, args[0]); err != nil {
			return err
		}
		logger.Infof("Logging to file: %s\n", args[0])
	} else {
		logger.Infof("Logging to console only (provide a log file path to enable file logging)\n")
	}

	logger.Infof("starting at %s\n", time.Now().Format(time.RFC3339))
	logger.Infoln("hello", "world")
	logger.InfoKV("frame rendered", "frame", 1, "ms", 16)
	logger.Errorf("oops: %v\n", "something happened")
	logger.ErrorKV("asset missing", "name", "grass.png")
	logger.Fatalf("critical error: %v\n", "system failure")

	if logger.Default().FatalOccurred() {
		return errFatalLogged
	}
	return nil
}

// runArchive and runCleanup use New rather than Init so LOGGER_FILE never
// replaces the file they operate on.
func runArchive(cmd *cobra.Command, args []string) error {
	l := logger.New(logger.Config{ArchiveDir: archiveDir})
	l.SetLogPath(args[0])

	report, err := l.Archive()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report)
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	l := logger.New(logger.Config{})
	l.SetLogPath(args[0])
	return l.Cleanup()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFatalLogged) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
