// Command pwsafe is a terminal front end over pkg/pwsafe: open, list,
// add, remove, and rekey a PasswordSafe V3 safe file. Clipboard, file
// choosers, and any tree-widget presentation are left to a real UI;
// this tool only prints plain text.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/pwsafe/cmd/pwsafe/internal/config"
	"github.com/barnettlynn/pwsafe/pkg/pwsafe"
)

var (
	verbose      bool
	logFormat    string
	cfgPath      string
	loadedConfig *config.Config
)

func main() {
	root := &cobra.Command{
		Use:           "pwsafe",
		Short:         "Inspect and edit PasswordSafe V3 safes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging()
			return loadConfigIfPresent()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to CLI config YAML")

	root.AddCommand(openCmd(), addCmd(), rmCmd(), rmGroupCmd(), rekeyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCodeFor(err))
	}
}

func configureLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if logFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	}
}

func loadConfigIfPresent() error {
	if cfgPath == "" {
		return nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	loadedConfig = cfg
	return nil
}

// exitCodeFor maps a pwsafe error kind to a process exit code: 2 for a
// user/data problem (bad passphrase, tampered file, wrong file kind),
// 1 for anything else, matching the distinction the engine's error
// taxonomy is built to preserve.
func exitCodeFor(err error) int {
	switch {
	case pwsafe.Is(err, pwsafe.InvalidPassword),
		pwsafe.Is(err, pwsafe.InvalidTag),
		pwsafe.Is(err, pwsafe.HmacMismatch):
		return 2
	default:
		return 1
	}
}

func resolveSafePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if loadedConfig != nil && loadedConfig.DefaultPath != "" {
		return loadedConfig.DefaultPath, nil
	}
	return "", fmt.Errorf("no safe path given and no --config default_path set")
}
