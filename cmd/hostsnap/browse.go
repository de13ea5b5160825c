package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/five82/hostsnap/internal/ansi"
	"github.com/five82/hostsnap/internal/snapshot"
)

// countWorkers bounds the concurrent timestamp lookups of hosts --count.
const countWorkers = 4

var (
	headerFmt = color.New(color.FgCyan, color.Underline).SprintfFunc()
	bold      = color.New(color.Bold).SprintFunc()
	green     = color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow    = color.New(color.FgYellow, color.Bold).SprintFunc()
	red       = color.New(color.FgRed).SprintFunc()
)

func newTable(out io.Writer, columns ...interface{}) table.Table {
	return table.New(columns...).WithHeaderFormatter(headerFmt).WithWriter(out)
}

func newHostsCmd(opts *rootOptions) *cobra.Command {
	var count bool

	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "List hosts that have snapshots",
		Long: `List every host known to the snapshot API, in the order the API returns.

Examples:
  hostsnap hosts
  hostsnap hosts --count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, logger, err := opts.client(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			hosts, err := client.ListHosts(ctx)
			if err != nil {
				return fmt.Errorf("list hosts: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(hosts) == 0 {
				_, err := fmt.Fprintln(out, "No hosts.")
				return err
			}
			if !count {
				tbl := newTable(out, "Host")
				for _, h := range hosts {
					tbl.AddRow(h)
				}
				tbl.Print()
				return nil
			}

			counts := countTimestamps(ctx, client, hosts)
			tbl := newTable(out, "Host", "Snapshots")
			for i, h := range hosts {
				cell := strconv.Itoa(counts[i].n)
				if counts[i].err != nil {
					logger.Warn("list timestamps failed", "host", h, "error", counts[i].err)
					cell = red("error")
				}
				tbl.AddRow(h, cell)
			}
			tbl.Print()
			return nil
		},
	}

	cmd.Flags().BoolVar(&count, "count", false, "Also show how many snapshots each host has")
	return cmd
}

type hostCount struct {
	n   int
	err error
}

// countTimestamps looks up every host concurrently. A failure is recorded
// against its host and does not stop the others.
func countTimestamps(ctx context.Context, client snapshot.Gateway, hosts []string) []hostCount {
	results := make([]hostCount, len(hosts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countWorkers)
	for i, host := range hosts {
		g.Go(func() error {
			list, err := client.ListTimestamps(gctx, host)
			results[i] = hostCount{n: len(list), err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func newTimestampsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timestamps <host>",
		Short: "List the snapshot timestamps of a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.client(cmd)
			if err != nil {
				return err
			}
			host := args[0]
			list, err := client.ListTimestamps(cmd.Context(), host)
			if err != nil {
				return fmt.Errorf("list timestamps of %s: %w", host, err)
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				_, err := fmt.Fprintf(out, "No snapshots for %s.\n", host)
				return err
			}
			tbl := newTable(out, "Timestamp", "Local time")
			for _, ts := range list {
				tbl.AddRow(ts, snapshot.FormatTimestamp(ts))
			}
			tbl.Print()
			return nil
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show <host> <timestamp>",
		Short: "Print one snapshot",
		Long: `Print the snapshot of a host at a timestamp, indented.

Examples:
  hostsnap show 10.0.0.5 2024-01-15T10:30:00Z
  hostsnap show 10.0.0.5 2024-01-15T10:30:00Z --yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.client(cmd)
			if err != nil {
				return err
			}
			content, err := client.GetSnapshot(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("get snapshot: %w", err)
			}
			format := snapshot.FormatJSON
			if asYAML {
				format = snapshot.FormatYAML
			}
			text, err := snapshot.Pretty(content, format)
			if err != nil {
				return fmt.Errorf("format snapshot: %w", err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML instead of JSON")
	return cmd
}

func newDiffCmd(opts *rootOptions) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "diff <host> <t1> <t2>",
		Short: "Compare two snapshots of a host",
		Long: `Ask the API to compare two snapshots of the same host and print the verdict
followed by the differences.

Examples:
  hostsnap diff 10.0.0.5 2024-01-01T00:00:00Z 2024-01-02T00:00:00Z
  hostsnap diff 10.0.0.5 2024-01-01T00:00:00Z 2024-01-02T00:00:00Z --no-color`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, t1, t2 := args[0], args[1], args[2]
			if t1 == t2 {
				return fmt.Errorf("t1 and t2 must differ")
			}
			client, _, err := opts.client(cmd)
			if err != nil {
				return err
			}
			if noColor {
				color.NoColor = true
			}
			result, err := client.GetDiff(cmd.Context(), host, t1, t2)
			if err != nil {
				return fmt.Errorf("diff snapshots: %w", err)
			}
			return printDiff(cmd.OutOrStdout(), host, t1, t2, result, noColor || color.NoColor)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Strip colors from the output")
	return cmd
}

func printDiff(out io.Writer, host, t1, t2 string, result snapshot.DiffResult, plain bool) error {
	verdict := yellow("DIFFERENT")
	if result.Identical() {
		verdict = green("IDENTICAL")
	}
	if _, err := fmt.Fprintf(out, "%s  %s  %s → %s\n", verdict, bold(host), t1, t2); err != nil {
		return err
	}

	body := result.Differences
	if plain {
		body = ansi.Strip(body)
	}
	if body == "" {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if _, err := io.WriteString(out, body); err != nil {
		return err
	}
	if body[len(body)-1] != '\n' {
		_, err := fmt.Fprintln(out)
		return err
	}
	return nil
}
