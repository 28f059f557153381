package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lums/lums-timer/internal/config"
	"github.com/lums/lums-timer/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	verbose    bool
	logFile    string
	jsonOutput bool

	rootCmd = &cobra.Command{
		Use:   "lums-timer [CONFIG_FILE]",
		Short: "A full-screen countdown kiosk for running a multi-stage agenda.",
		Long: `Shows the current stage of an agenda with a large countdown, its title and the upcoming stage, sized for a projector.
The countdown turns yellow close to the end and red when time is up. Stages without a duration show the wall clock.

Keys: →/enter start or advance, ←/backspace stop or go back, a insert announcement, s swap with next, d delete next, esc quit.

CONFIG_FILE defaults to config.json and may be JSON or YAML.`,
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRun: configureLogging,
		Run:              runKiosk,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to keep stdout for reports.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().
		StringVar(&logFile, "log-file", "", "Optional: append logs to this file while the kiosk is on screen")
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the decoded agenda in JSON format instead of text")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(findCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func configureLogging(_ *cobra.Command, _ []string) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func configPath(args []string) string {
	if len(args) == 0 {
		return config.DefaultFile
	}
	return args[0]
}

func runKiosk(cmd *cobra.Command, args []string) {
	a, err := config.Load(configPath(args))
	if err != nil {
		logrus.Fatalf("Unable to load agenda: %v", err)
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		logrus.Fatal("The kiosk needs a terminal on stdout. Use 'lums-timer check' to inspect an agenda non-interactively.")
	}

	err = withLogFile(logFile, func(logOut io.Writer) error {
		opts := tui.RunOptions{LogOutput: logOut, Session: uuid.NewString()}
		return tui.Run(cmd.Context(), a, opts)
	})
	if err != nil {
		logrus.Fatalf("Kiosk failed: %v", err)
	}
}

// withLogFile runs fn with the log file at path opened for appending, or with a
// nil writer when path is empty. The file is closed before withLogFile returns.
func withLogFile(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer f.Close()
	return fn(f)
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var checkCmd = &cobra.Command{
	Use:   "check [CONFIG_FILE]",
	Short: "Validate an agenda file and print its stages",
	Long:  "Decode and validate an agenda file, then print every stage with its countdown and the remaining time at which it turns yellow.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := config.Load(configPath(args))
		if err != nil {
			logrus.Fatal(err)
		}
		if err := printAgenda(os.Stdout, a, jsonOutput); err != nil {
			logrus.Fatal(err)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var findCmd = &cobra.Command{
	Use:   "find [DIR]",
	Short: "List agenda files under a directory [Defaults to the current directory]",
	Long:  "Walk a directory tree and list every JSON or YAML file that decodes as an agenda.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		if st, err := os.Stat(root); err != nil {
			logrus.Fatal(err)
		} else if !st.IsDir() {
			logrus.Fatalf("%s is not a directory", root)
		}
		printFound(os.Stdout, findAgendas(cmd.Context(), root))
	},
}

func main() {
	Execute()
}
