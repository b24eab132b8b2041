package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/plumbgrid/scenario"
	"github.com/katalvlaran/plumbgrid/world/memworld"
	"github.com/katalvlaran/plumbgrid/world/sqlworld"
)

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Execute a scenario and print its trace",
		Long: `Execute a scenario against a fresh network and print one trace line per step.

The world lives in memory unless --db names a SQLite file; the file is
created when missing and keeps whatever the scenario leaves behind. A
rerun empties the sub-units the scenario seeds before placing anything.
Missed expectations exit with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, rootOpts, args[0], dbPath)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite world database (in-memory world when empty)")
	return cmd
}

func runScenario(cmd *cobra.Command, opts *rootOptions, path, dbPath string) (err error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	netOpts, err := cfg.NetworkOptions(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var w scenario.World
	if dbPath == "" {
		w = scenario.Memory(memworld.New())
	} else {
		db, openErr := sqlworld.Open(dbPath)
		if openErr != nil {
			return openErr
		}
		defer func() { err = errors.Join(err, db.Close()) }()
		w = db
	}

	res, runErr := scenario.Run(cmd.Context(), sc, w, netOpts...)
	if res != nil {
		if opts.Format == "json" {
			if err := res.WriteJSON(cmd.OutOrStdout()); err != nil {
				return err
			}
		} else if _, err := cmd.OutOrStdout().Write(res.Trace()); err != nil {
			return err
		}
	}
	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, scenario.ErrExpectation), errors.Is(runErr, scenario.ErrInvalidScenario):
		return &exitError{code: exitFailure, err: runErr}
	}
	return fmt.Errorf("run %s: %w", sc.Name, runErr)
}
