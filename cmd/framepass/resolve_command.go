package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"framepass/internal/config"
	"framepass/internal/framespec"
	"framepass/internal/journal"
	"framepass/internal/logging"
	"framepass/internal/plan"
	"framepass/internal/plangraph"
	"framepass/internal/policy"
	"framepass/internal/status"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var output string
	var noJournal bool

	cmd := &cobra.Command{
		Use:   "resolve FRAME.toml",
		Short: "Resolve a frame description into a per-pass execution plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			frame, id, resolveErr := resolveFrame(cmd.Context(), cfg, logger, args[0])
			if cfg.Journal.Enabled && !noJournal {
				if err := ctx.withJournal(func(store *journal.Store) error {
					return journalResolution(cmd.Context(), cfg, store, frame, id, args[0], resolveErr)
				}); err != nil {
					logging.WarnWithContext(logger, "journal update failed", "journal_write_failed",
						logging.Error(err),
						logging.String(logging.FieldImpact, "resolution is not recorded in history"),
					)
				}
			}
			if resolveErr != nil {
				return resolveErr
			}

			switch format {
			case outputJSON:
				return writeJSON(cmd, frame)
			case outputDot:
				dot, err := plangraph.Render(frame)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dot)
				return nil
			default:
				fmt.Fprint(cmd.OutOrStdout(), renderPlan(frame, shouldColorize(cmd.OutOrStdout())))
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(outputTable), "Output format: table, json, or dot")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Do not record this resolution in the journal")
	return cmd
}

// resolveFrame loads and resolves the description at path. The returned id
// is set as soon as the description parses, so failures can be journaled
// under it.
func resolveFrame(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string) (*plan.Frame, string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	desc, err := framespec.Load(path)
	if err != nil {
		return nil, "", err
	}

	ctx = status.WithFrameID(ctx, desc.ID)
	resolver := policy.NewResolver(policy.Options{
		MaxOutstanding: cfg.Resolver.MaxOutstandingParams,
		MaxPasses:      cfg.Resolver.MaxPasses,
		Logger:         logger,
	})
	frame, err := resolver.ResolveFrame(ctx, desc.Chain, desc.Passes, nil)
	if err != nil {
		return nil, desc.ID, err
	}
	return frame, desc.ID, nil
}

func journalResolution(ctx context.Context, cfg *config.Config, store *journal.Store, frame *plan.Frame, id, path string, resolveErr error) error {
	var entry journal.Entry
	if resolveErr != nil {
		if id == "" {
			// The description never parsed; key the failure by its path.
			id = "file:" + path
		}
		entry = journal.Failed(id, path, resolveErr)
	} else {
		var err error
		if entry, err = journal.FromFrame(frame, path); err != nil {
			return err
		}
	}
	if err := store.Record(ctx, entry); err != nil {
		return err
	}
	_, err := store.Prune(ctx, cfg.Journal.KeepFrames)
	return err
}
