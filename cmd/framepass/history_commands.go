package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"framepass/internal/journal"
	"framepass/internal/status"
	"framepass/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled frame resolutions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(store *journal.Store) error {
				entries, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, historyViews(entries))
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Journal is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.FrameID,
						e.ResolvedAt.Local().Format(time.DateTime),
						titleLabel(string(e.Outcome)),
						strconv.Itoa(e.PassCount),
						strconv.Itoa(e.StepCount),
						strconv.Itoa(e.Unresolved),
						textutil.OrDash(e.Source),
					})
				}
				fmt.Fprintln(out, renderTable([]column{
					{title: "Frame"},
					{title: "Resolved"},
					{title: "Outcome"},
					colPasses,
					colSteps,
					colUnresolved,
					{title: "Source"},
				}, rows))
				return nil
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to list (0 for all)")
	historyCmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show FRAME_ID",
		Short: "Show one journaled resolution with its plan steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(store *journal.Store) error {
				entry, err := store.Get(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				if entry == nil {
					return fmt.Errorf("frame %s not found in journal", args[0])
				}
				if asJSON {
					return writeJSON(cmd, newHistoryView(*entry))
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				kind := statusOK
				switch {
				case !entry.Succeeded():
					kind = statusError
				case entry.Unresolved > 0:
					kind = statusWarn
				}
				fmt.Fprintln(out, renderStatusLine("Frame", kind, entry.FrameID, colorize))
				fmt.Fprintln(out, renderStatusLine("Resolved", statusInfo, entry.ResolvedAt.Local().Format(time.RFC3339), colorize))
				fmt.Fprintln(out, renderStatusLine("Outcome", kind, titleLabel(string(entry.Outcome)), colorize))
				if entry.Source != "" {
					fmt.Fprintln(out, renderStatusLine("Source", statusInfo, entry.Source, colorize))
				}
				if entry.Error != "" {
					fmt.Fprintln(out, renderStatusLine("Error", statusError, entry.Error, colorize))
				}
				if len(entry.Steps) == 0 {
					return nil
				}
				rows := make([][]string, 0, len(entry.Steps))
				for _, s := range entry.Steps {
					rows = append(rows, []string{strconv.Itoa(s.Pass), strconv.Itoa(s.Seq), s.Type, s.Setter})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]column{colPass, colSeq, colFeature, colSetter}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every journaled resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(store *journal.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s\n", removed, textutil.Plural(int(removed), "entry", "entries"))
				return nil
			})
		},
	}
}

type historyView struct {
	FrameID    string         `json:"frame_id"`
	Source     string         `json:"source,omitempty"`
	ResolvedAt time.Time      `json:"resolved_at"`
	Outcome    status.Code    `json:"outcome"`
	Error      string         `json:"error,omitempty"`
	Passes     int            `json:"passes"`
	Steps      int            `json:"steps"`
	Unresolved int            `json:"unresolved"`
	StepList   []journal.Step `json:"step_list,omitempty"`
}

func newHistoryView(e journal.Entry) historyView {
	return historyView{
		FrameID:    e.FrameID,
		Source:     e.Source,
		ResolvedAt: e.ResolvedAt,
		Outcome:    e.Outcome,
		Error:      e.Error,
		Passes:     e.PassCount,
		Steps:      e.StepCount,
		Unresolved: e.Unresolved,
		StepList:   e.Steps,
	}
}

func historyViews(entries []journal.Entry) []historyView {
	out := make([]historyView, 0, len(entries))
	for _, e := range entries {
		out = append(out, newHistoryView(e))
	}
	return out
}
