package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"framepass/internal/plan"
	"framepass/internal/status"
)

// Entry is one journaled resolution.
type Entry struct {
	FrameID    string
	Source     string
	ResolvedAt time.Time
	Outcome    status.Code
	Error      string
	PassCount  int
	StepCount  int
	Unresolved int
	// PlanJSON is the full plan as printed by `resolve --output json`. Empty
	// for failed resolutions.
	PlanJSON string
	// Steps is only populated by Get.
	Steps []Step
}

// Step is one applied plan node.
type Step struct {
	Pass      int    `json:"pass"`
	Seq       int    `json:"seq"`
	Type      string `json:"type"`
	Setter    string `json:"setter"`
	BlockJSON string `json:"block"`
}

// Succeeded reports whether the resolution produced a plan.
func (e Entry) Succeeded() bool {
	return e.Outcome == status.CodeSuccess
}

// FromFrame builds a success entry from a resolved frame plan.
func FromFrame(frame *plan.Frame, source string) (Entry, error) {
	if frame == nil {
		return Entry{}, errors.New("journal: nil frame")
	}
	planJSON, err := json.Marshal(frame)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal plan: %w", err)
	}
	entry := Entry{
		FrameID:    frame.ID,
		Source:     source,
		ResolvedAt: frame.ResolvedAt,
		Outcome:    status.CodeSuccess,
		PassCount:  len(frame.Passes),
		StepCount:  frame.StepCount(),
		Unresolved: len(frame.Unresolved),
		PlanJSON:   string(planJSON),
	}
	for _, pass := range frame.Passes {
		for seq, step := range pass.Steps {
			block, err := json.Marshal(step.Block)
			if err != nil {
				return Entry{}, fmt.Errorf("marshal %s block: %w", step.Name, err)
			}
			entry.Steps = append(entry.Steps, Step{
				Pass:      pass.Index,
				Seq:       seq + 1,
				Type:      step.Name,
				Setter:    step.Setter,
				BlockJSON: string(block),
			})
		}
	}
	return entry, nil
}

// Failed builds an entry for a resolution that returned err.
func Failed(frameID, source string, err error) Entry {
	entry := Entry{
		FrameID:    frameID,
		Source:     source,
		ResolvedAt: time.Now().UTC(),
		Outcome:    status.CodeOf(err),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	return entry
}

// Record stores entry, replacing any earlier entry for the same frame id.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(entry.FrameID) == "" {
		return errors.New("journal: entry has no frame id")
	}
	if entry.ResolvedAt.IsZero() {
		entry.ResolvedAt = time.Now().UTC()
	}
	if entry.Outcome == "" {
		entry.Outcome = status.CodeSuccess
	}
	return retryOnBusy(ctx, func() error {
		return s.record(ctx, entry)
	})
}

func (s *Store) record(ctx context.Context, entry Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM frames WHERE id = ?`, entry.FrameID); err != nil {
		return fmt.Errorf("replace frame: %w", err)
	}
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO frames (
            id, source, resolved_at, outcome, error_message,
            pass_count, step_count, unresolved_count, plan_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.FrameID,
		nullableString(entry.Source),
		entry.ResolvedAt.UTC().Format(timeLayout),
		string(entry.Outcome),
		nullableString(entry.Error),
		entry.PassCount,
		entry.StepCount,
		entry.Unresolved,
		nullableString(entry.PlanJSON),
	)
	if err != nil {
		return fmt.Errorf("insert frame: %w", err)
	}
	for _, step := range entry.Steps {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO steps (frame_id, pass, seq, feature_type, setter, block_json) VALUES (?, ?, ?, ?, ?, ?)`,
			entry.FrameID, step.Pass, step.Seq, step.Type, step.Setter, nullableString(step.BlockJSON),
		); err != nil {
			return fmt.Errorf("insert step %d.%d: %w", step.Pass, step.Seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

// timeLayout is fixed width so resolved_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const frameColumns = "id, source, resolved_at, outcome, error_message, pass_count, step_count, unresolved_count, plan_json"

// List returns the most recent entries first. A limit <= 0 returns all of them.
// Steps are not loaded.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + frameColumns + ` FROM frames ORDER BY resolved_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Get returns the entry for id with its steps, or nil when it is unknown.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+frameColumns+` FROM frames WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get frame: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT pass, seq, feature_type, setter, block_json FROM steps WHERE frame_id = ? ORDER BY pass, seq`, id)
	if err != nil {
		return nil, fmt.Errorf("get steps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			step  Step
			block sql.NullString
		)
		if err := rows.Scan(&step.Pass, &step.Seq, &step.Type, &step.Setter, &block); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step.BlockJSON = block.String
		entry.Steps = append(entry.Steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM frames`)
	if err != nil {
		return 0, fmt.Errorf("clear journal: %w", err)
	}
	return res.RowsAffected()
}

// Prune keeps the newest keep entries and deletes the rest. keep <= 0 keeps
// everything.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM frames WHERE id NOT IN (
            SELECT id FROM frames ORDER BY resolved_at DESC, rowid DESC LIMIT ?
        )`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune journal: %w", err)
	}
	return res.RowsAffected()
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry       Entry
		source      sql.NullString
		resolvedRaw string
		outcome     string
		errMsg      sql.NullString
		planJSON    sql.NullString
	)
	if err := scanner.Scan(
		&entry.FrameID,
		&source,
		&resolvedRaw,
		&outcome,
		&errMsg,
		&entry.PassCount,
		&entry.StepCount,
		&entry.Unresolved,
		&planJSON,
	); err != nil {
		return nil, err
	}
	resolved, err := time.Parse(timeLayout, resolvedRaw)
	if err != nil {
		return nil, fmt.Errorf("parse resolved_at %q: %w", resolvedRaw, err)
	}
	entry.ResolvedAt = resolved
	entry.Source = source.String
	entry.Outcome = status.Code(outcome)
	entry.Error = errMsg.String
	entry.PlanJSON = planJSON.String
	return &entry, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
