package main

import (
	"fmt"
	"io"
	"os"

	"clouddictionary/domain/core/entities"
	apperrors "clouddictionary/pkg/errors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "dictctl",
		Short:         "Administer the cloud dictionary",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Print results as JSON")

	root.AddCommand(importCmd(a))
	root.AddCommand(rotateCmd(a))
	root.AddCommand(getCmd(a))
	root.AddCommand(todayCmd(a))
	root.AddCommand(statsCmd(a))

	return root
}

func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Create definitions from a YAML or JSON list; existing words are skipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			definitions, err := parseDefinitions(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			result, err := a.definitions.Import(cmd.Context(), definitions)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created: %d\nskipped: %d\n", result.Created, result.Skipped)
			for _, word := range result.Failed {
				fmt.Fprintf(out, "invalid: %s\n", word)
			}
			return nil
		},
	}
}

// parseDefinitions reads a list of definitions. JSON is accepted since it
// is valid YAML.
func parseDefinitions(r io.Reader) ([]*entities.Definition, error) {
	var definitions []*entities.Definition
	if err := yaml.NewDecoder(r).Decode(&definitions); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return definitions, nil
}

func rotateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Pick a new definition of the day now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.today.Rotate(cmd.Context())
			if err != nil {
				return err
			}
			return a.printDefinition(cmd.OutOrStdout(), d)
		},
	}
}

func getCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [word]",
		Short: "Show the definition of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.definitions.GetByWord(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printDefinition(cmd.OutOrStdout(), d)
		},
	}
}

func todayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the current definition of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.today.Current(cmd.Context())
			if err != nil {
				return err
			}
			return a.printDefinition(cmd.OutOrStdout(), d)
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := a.definitions.Count(cmd.Context())
			if err != nil {
				return err
			}

			current := "(none)"
			d, err := a.today.Current(cmd.Context())
			switch {
			case err == nil:
				current = d.Word
			case !apperrors.IsNotFound(err):
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "definitions:        %d\ndefinition of day:  %s\n", count, current)
			return nil
		},
	}
}
