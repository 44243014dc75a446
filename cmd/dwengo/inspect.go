package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SELab-2/Dwengo-4-sub000/internal/presentation/tui"
)

func parsePathID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid path id %q", arg)
	}
	return id, nil
}

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <path-id>",
	Short: "Export a stored path as a Mermaid diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePathID(args[0])
		if err != nil {
			return err
		}
		a, err := appFor(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.service.Mermaid(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <path-id>",
	Short: "Print a stored path as an outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePathID(args[0])
		if err != nil {
			return err
		}
		a, err := appFor(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		md, err := a.service.Outline(cmd.Context(), id)
		if err != nil {
			return err
		}
		style, _ := cmd.Flags().GetString("style")
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			style = string(tui.StylePlain)
		}
		width, _ := cmd.Flags().GetInt("width")
		r, err := tui.NewOutlineRenderer(tui.Style(style), width)
		if err != nil {
			return err
		}
		return r.Render(cmd.OutOrStdout(), md)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <path-id>",
	Short: "Check that a stored path forms a tree",
	Long:  `Rebuilds the path from its transitions and reports dangling branches or unreachable nodes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePathID(args[0])
		if err != nil {
			return err
		}
		a, err := appFor(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.service.Validate(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Path %d: %d nodes in %d sequences\n", report.PathID, report.Nodes, report.Branches)
		for _, w := range report.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
		if len(report.Warnings) == 0 {
			fmt.Fprintln(out, "Path is valid! ✅")
		}
		return nil
	},
}

func appFor(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, nil)
}

func init() {
	rootCmd.AddCommand(graphCmd, showCmd, validateCmd)
	showCmd.Flags().Bool("raw", false, "Print markdown without terminal styling (same as --style plain)")
	showCmd.Flags().String("style", string(tui.StyleAuto), "Outline style: auto, dark, light or plain")
	showCmd.Flags().Int("width", tui.DefaultWidth, "Wrap column of the outline")
	validateCmd.Flags().Bool("json", false, "Print the report as JSON")
}
