package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/plumbgrid/scenario"
)

// validation is the JSON body printed by validate.
type validation struct {
	Valid bool   `json:"valid"`
	Name  string `json:"name,omitempty"`
	Steps int    `json:"steps,omitempty"`
	Error string `json:"error,omitempty"`
}

func newValidateCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario>",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, opts *rootOptions, path string) error {
	out := cmd.OutOrStdout()
	sc, loadErr := scenario.Load(path)

	v := validation{Valid: loadErr == nil}
	if loadErr != nil {
		v.Error = loadErr.Error()
	} else {
		v.Name, v.Steps = sc.Name, len(sc.Steps)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return err
		}
	} else if v.Valid {
		fmt.Fprintf(out, "ok: %s (%d steps)\n", v.Name, v.Steps)
	} else {
		fmt.Fprintf(out, "invalid: %s\n", v.Error)
	}

	if loadErr != nil {
		return &exitError{code: exitFailure, err: loadErr}
	}
	return nil
}
