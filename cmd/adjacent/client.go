package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1broseidon/adjacent/internal/adjacent"
	"github.com/1broseidon/adjacent/internal/ipc"
)

func newFocusCmd(flags *globalFlags) *cobra.Command {
	var dryRun bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "focus <left|right|up|down>",
		Short: "Move focus to the adjacent window in a direction",
		Long: `Ask the daemon to focus the adjacent window in a direction.

With --dry-run the chosen window is reported without changing focus.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"left", "right", "up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := adjacent.ParseDirection(args[0])
			if err != nil {
				return err
			}
			client, err := flags.client()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()
			data, err := client.Focus(ctx, dir.String(), dryRun)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), data)
			}
			printDecision(cmd.OutOrStdout(), data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the target without activating it")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the decision as JSON")
	return cmd
}

func printDecision(w io.Writer, d *ipc.DecisionData) {
	switch {
	case d.Focused == nil:
		fmt.Fprintf(w, "%s: no focused window\n", d.Direction)
	case d.Target == nil:
		fmt.Fprintf(w, "%s: nothing %s of %s (%s)\n", d.Direction, directionPhrase(d.Direction), describeWindow(d.Focused), d.Policy)
	case d.Activated:
		fmt.Fprintf(w, "%s: focused %s (%s, %d candidates)\n", d.Direction, describeWindow(d.Target), d.Policy, d.Candidates)
	default:
		fmt.Fprintf(w, "%s: would focus %s (%s, %d candidates)\n", d.Direction, describeWindow(d.Target), d.Policy, d.Candidates)
	}
}

func directionPhrase(dir string) string {
	switch dir {
	case "up":
		return "above"
	case "down":
		return "below"
	}
	return "to the " + dir
}

func describeWindow(w *ipc.WindowInfo) string {
	if w.Title != "" {
		return fmt.Sprintf("0x%x %q", w.ID, w.Title)
	}
	return fmt.Sprintf("0x%x", w.ID)
}

func newWindowsCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List windows on the current workspace, topmost first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			data, err := client.ListWindows(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), data)
			}
			printWindows(cmd.OutOrStdout(), data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func printWindows(w io.Writer, data *ipc.WindowsData) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tGEOMETRY\tMON\tCORNERS\tCLASS\tTITLE")
	for _, win := range data.Windows {
		mark := " "
		if win.Focused {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t0x%x\t%dx%d+%d+%d\t%d\t%s\t%s\t%s\n",
			mark, win.ID, win.Width, win.Height, win.X, win.Y, win.Monitor,
			cornerSummary(win), win.Class, win.Title)
	}
	_ = tw.Flush()
}

// cornerSummary renders visible corners as tl/tr/bl/br, "-" when fully
// covered and "min" for minimized windows.
func cornerSummary(win ipc.WindowInfo) string {
	if win.Minimized {
		return "min"
	}
	if win.Corners == nil {
		return "?"
	}
	var parts []string
	if win.Corners.TopLeft {
		parts = append(parts, "tl")
	}
	if win.Corners.TopRight {
		parts = append(parts, "tr")
	}
	if win.Corners.BottomLeft {
		parts = append(parts, "bl")
	}
	if win.Corners.BottomRight {
		parts = append(parts, "br")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			status, err := client.GetStatus(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "daemon_running:   %v\n", status.DaemonRunning)
			fmt.Fprintf(out, "uptime_seconds:   %d\n", status.UptimeSeconds)
			fmt.Fprintf(out, "selection_policy: %s\n", status.SelectionPolicy)
			fmt.Fprintf(out, "recency_source:   %s\n", status.RecencySource)
			fmt.Fprintf(out, "commands_served:  %d\n", status.CommandsServed)
			fmt.Fprintf(out, "config:           %s\n", status.ConfigPath)

			dirs := make([]string, 0, len(status.Bindings))
			for dir := range status.Bindings {
				dirs = append(dirs, dir)
			}
			sort.Slice(dirs, func(i, j int) bool {
				return directionRank(dirs[i]) < directionRank(dirs[j])
			})
			fmt.Fprintln(out, "bindings:")
			if len(dirs) == 0 {
				fmt.Fprintln(out, "  (none)")
			}
			for _, dir := range dirs {
				fmt.Fprintf(out, "  %-5s %s\n", dir, status.Bindings[dir])
			}
			return nil
		},
	}
}

func directionRank(s string) int {
	if d, err := adjacent.ParseDirection(s); err == nil {
		return int(d)
	}
	return len(adjacent.Directions)
}

func newReloadCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Re-read the config file and rebind hotkeys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			if err := client.Reload(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reloaded")
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
