package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/localnerve/visionfolio/internal/seed"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSeedCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the default content for a locale",
		Long:  `Print the default content for --locale as yaml (default) or json.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := seed.NewEmbedded().Defaults(locale)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(content); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(content)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	return cmd
}

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales with seed content",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, l := range seed.NewEmbedded().Locales() {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
		},
	}
}
