package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/studyflow/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// DB exposes the underlying handle for migrations.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, estimated_hours, deadline, important, frequency, preferred_time, min_session_hours, max_session_hours, one_sitting)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.EstimatedHours, nullDate(in.Deadline), boolInt(in.Important),
		string(in.Prefs.Frequency), string(in.Prefs.PreferredTime),
		in.Prefs.MinSessionHours, in.Prefs.MaxSessionHours, boolInt(in.Prefs.OneSittingPerTask),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, estimated_hours, deadline, important, frequency, preferred_time, min_session_hours, max_session_hours, one_sitting
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, estimated_hours = ?, deadline = ?, important = ?, frequency = ?, preferred_time = ?, min_session_hours = ?, max_session_hours = ?, one_sitting = ?
		WHERE id = ?`,
		in.Title, in.EstimatedHours, nullDate(in.Deadline), boolInt(in.Important),
		string(in.Prefs.Frequency), string(in.Prefs.PreferredTime),
		in.Prefs.MinSessionHours, in.Prefs.MaxSessionHours, boolInt(in.Prefs.OneSittingPerTask), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT id, title, estimated_hours, deadline, important, frequency, preferred_time, min_session_hours, max_session_hours, one_sitting FROM tasks`
	args := make([]any, 0, 3)
	if filter.Important != nil {
		query += ` WHERE important = ?`
		args = append(args, boolInt(*filter.Important))
	}
	query += ` ORDER BY deadline IS NULL, deadline ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateCommitment(ctx context.Context, in model.FixedCommitment) error {
	days, dates, deleted, modified, err := marshalOccurrences(in)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO commitments (id, title, type, start_time, end_time, recurring, days_of_week, specific_dates, deleted_occurrences, modified_occurrences)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, string(in.Type), in.StartTime, in.EndTime, boolInt(in.Recurring),
		days, dates, deleted, modified,
	)
	return err
}

func (r *SQLiteRepository) GetCommitment(ctx context.Context, id string) (model.FixedCommitment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, type, start_time, end_time, recurring, days_of_week, specific_dates, deleted_occurrences, modified_occurrences
		FROM commitments WHERE id = ?`, id)
	item, err := scanCommitment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FixedCommitment{}, ErrNotFound
		}
		return model.FixedCommitment{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateCommitment(ctx context.Context, in model.FixedCommitment) error {
	days, dates, deleted, modified, err := marshalOccurrences(in)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE commitments
		SET title = ?, type = ?, start_time = ?, end_time = ?, recurring = ?, days_of_week = ?, specific_dates = ?, deleted_occurrences = ?, modified_occurrences = ?
		WHERE id = ?`,
		in.Title, string(in.Type), in.StartTime, in.EndTime, boolInt(in.Recurring),
		days, dates, deleted, modified, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteCommitment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM commitments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListCommitments(ctx context.Context, filter CommitmentListFilter) ([]model.FixedCommitment, error) {
	query := `SELECT id, title, type, start_time, end_time, recurring, days_of_week, specific_dates, deleted_occurrences, modified_occurrences FROM commitments`
	args := make([]any, 0, 3)
	if filter.Type != "" {
		query += ` WHERE type = ?`
		args = append(args, string(filter.Type))
	}
	query += ` ORDER BY start_time ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.FixedCommitment, 0)
	for rows.Next() {
		item, scanErr := scanCommitment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListEdits(ctx context.Context) ([]model.SessionTimeEdit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT plan_date, task_id, session_number, original_start, new_start, new_end, edited_at, temporary
		FROM session_time_edits ORDER BY plan_date ASC, task_id ASC, session_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SessionTimeEdit, 0)
	for rows.Next() {
		var edit model.SessionTimeEdit
		var date string
		var editedAt string
		var temporary int
		if err := rows.Scan(&date, &edit.TaskID, &edit.SessionNumber, &edit.OriginalStart, &edit.NewStart, &edit.NewEnd, &editedAt, &temporary); err != nil {
			return nil, err
		}
		at, err := time.Parse(sqliteTimeLayout, editedAt)
		if err != nil {
			return nil, err
		}
		edit.PlanDate = model.Date(date)
		edit.EditedAt = at
		edit.Temporary = temporary == 1
		out = append(out, edit)
	}
	return out, rows.Err()
}

// ReplaceEdits rewrites the whole edit log in one transaction. The editor
// persists write-all after every mutation, so partial updates are never
// needed.
func (r *SQLiteRepository) ReplaceEdits(ctx context.Context, edits []model.SessionTimeEdit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace edits: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_time_edits`); err != nil {
		return fmt.Errorf("clear edit log: %w", err)
	}
	for _, edit := range edits {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO session_time_edits (plan_date, task_id, session_number, original_start, new_start, new_end, edited_at, temporary)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			string(edit.PlanDate), edit.TaskID, edit.SessionNumber,
			edit.OriginalStart, edit.NewStart, edit.NewEnd,
			edit.EditedAt.UTC().Format(sqliteTimeLayout), boolInt(edit.Temporary),
		); err != nil {
			return fmt.Errorf("insert edit %s: %w", edit.Key(), err)
		}
	}
	return tx.Commit()
}

func marshalOccurrences(in model.FixedCommitment) (days, dates, deleted, modified string, err error) {
	buf, err := json.Marshal(in.DaysOfWeek)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshal days of week: %w", err)
	}
	days = string(buf)
	if buf, err = json.Marshal(in.SpecificDates); err != nil {
		return "", "", "", "", fmt.Errorf("marshal specific dates: %w", err)
	}
	dates = string(buf)
	if buf, err = json.Marshal(in.DeletedOccurrences); err != nil {
		return "", "", "", "", fmt.Errorf("marshal deleted occurrences: %w", err)
	}
	deleted = string(buf)
	if buf, err = json.Marshal(in.ModifiedOccurrences); err != nil {
		return "", "", "", "", fmt.Errorf("marshal modified occurrences: %w", err)
	}
	modified = string(buf)
	return days, dates, deleted, modified, nil
}

func nullDate(d *model.Date) any {
	if d == nil {
		return nil
	}
	return string(*d)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var deadline sql.NullString
	var important int
	var frequency string
	var preferred string
	var oneSitting int
	if err := s.Scan(&out.ID, &out.Title, &out.EstimatedHours, &deadline, &important,
		&frequency, &preferred, &out.Prefs.MinSessionHours, &out.Prefs.MaxSessionHours, &oneSitting); err != nil {
		return model.Task{}, err
	}
	if deadline.Valid && deadline.String != "" {
		d := model.Date(deadline.String)
		out.Deadline = &d
	}
	out.Important = important == 1
	out.Prefs.Frequency = model.Frequency(frequency)
	out.Prefs.PreferredTime = model.PreferredTime(preferred)
	out.Prefs.OneSittingPerTask = oneSitting == 1
	return out, nil
}

func scanCommitment(s scanner) (model.FixedCommitment, error) {
	var out model.FixedCommitment
	var kind string
	var recurring int
	var days, dates, deleted, modified string
	if err := s.Scan(&out.ID, &out.Title, &kind, &out.StartTime, &out.EndTime, &recurring,
		&days, &dates, &deleted, &modified); err != nil {
		return model.FixedCommitment{}, err
	}
	out.Type = model.CommitmentType(kind)
	out.Recurring = recurring == 1
	if err := json.Unmarshal([]byte(days), &out.DaysOfWeek); err != nil {
		return model.FixedCommitment{}, fmt.Errorf("unmarshal days of week: %w", err)
	}
	if err := json.Unmarshal([]byte(dates), &out.SpecificDates); err != nil {
		return model.FixedCommitment{}, fmt.Errorf("unmarshal specific dates: %w", err)
	}
	if err := json.Unmarshal([]byte(deleted), &out.DeletedOccurrences); err != nil {
		return model.FixedCommitment{}, fmt.Errorf("unmarshal deleted occurrences: %w", err)
	}
	if err := json.Unmarshal([]byte(modified), &out.ModifiedOccurrences); err != nil {
		return model.FixedCommitment{}, fmt.Errorf("unmarshal modified occurrences: %w", err)
	}
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
