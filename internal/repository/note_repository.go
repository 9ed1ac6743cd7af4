// This file defines the note repository: owner-scoped CRUD over the
// `notes` table. Every read and write is filtered by owner_id in the SQL
// itself, never by post-filtering in Go, so a note id belonging to
// someone else behaves exactly like a missing row.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/model"
)

// NotePatch carries a partial update. Each field is independently
// present (non-nil) or absent (nil); absent fields leave the stored
// value untouched.
type NotePatch struct {
	Title         *string
	Content       *string
	ColorHex      *string
	PositionIndex *int
	DueDate       *time.Time
	IsCompleted   *bool
}

// NoteRepo encapsulates all database queries related to notes.
type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{db: db} }

const noteColumns = "id, owner_id, title, content, color_hex, position_index, due_date, is_completed, created_at, updated_at"

// Create inserts a new note bound to its owner. On success the note's
// ID, CreatedAt and UpdatedAt fields are populated from the database so
// callers receive a fully populated record. There is no uniqueness
// constraint on notes; this always succeeds barring storage failure.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	const qInsert = `INSERT INTO notes (owner_id, title, content, color_hex, position_index, due_date, is_completed)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		n.OwnerID, n.Title, n.Content, n.ColorHex, n.PositionIndex, n.DueDate, n.IsCompleted)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM notes WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, n.ID).Scan(&n.CreatedAt, &n.UpdatedAt)
}

// ListByOwner returns all notes for an owner ordered by position_index
// ascending, so the client renders them in the exact dragged order. Ties
// fall back to id to keep the order stable.
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Note, error) {
	const q = "SELECT " + noteColumns + " FROM notes WHERE owner_id = ? ORDER BY position_index, id"
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Note
	for rows.Next() {
		n := new(model.Note)
		if err := scanNote(rows, n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDAndOwner fetches a note by id but only if it belongs to the
// specified owner. A note that exists under a different owner is
// reported as ErrNoteNotFound, same as a missing one.
func (r *NoteRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Note, error) {
	const q = "SELECT " + noteColumns + " FROM notes WHERE id = ? AND owner_id = ?"
	n := new(model.Note)
	if err := scanNote(r.db.QueryRowContext(ctx, q, id, ownerID), n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

// Update applies a partial patch to a note owned by ownerID. The row is
// locked, patched field by field and written back inside a single
// transaction, so a failed update has no effect at all. Returns the
// updated record, or ErrNoteNotFound when the note is absent or owned by
// someone else.
func (r *NoteRepo) Update(ctx context.Context, ownerID, id uint64, p NotePatch) (n *model.Note, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const qSelect = "SELECT " + noteColumns + " FROM notes WHERE id = ? AND owner_id = ? FOR UPDATE"
	n = new(model.Note)
	if err = scanNote(tx.QueryRowContext(ctx, qSelect, id, ownerID), n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNoteNotFound
		}
		return nil, err
	}

	if p.Title != nil {
		n.Title = p.Title
	}
	if p.Content != nil {
		n.Content = p.Content
	}
	if p.ColorHex != nil {
		n.ColorHex = *p.ColorHex
	}
	if p.PositionIndex != nil {
		n.PositionIndex = *p.PositionIndex
	}
	if p.DueDate != nil {
		n.DueDate = p.DueDate
	}
	if p.IsCompleted != nil {
		n.IsCompleted = *p.IsCompleted
	}

	const qUpdate = `UPDATE notes SET title = ?, content = ?, color_hex = ?, position_index = ?, due_date = ?, is_completed = ?
	                 WHERE id = ? AND owner_id = ?`
	if _, err = tx.ExecContext(ctx, qUpdate,
		n.Title, n.Content, n.ColorHex, n.PositionIndex, n.DueDate, n.IsCompleted, id, ownerID); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes a note owned by ownerID and reports whether a deletion
// occurred. Deleting a missing or foreign note is not an error; it
// simply returns false, which handlers map to 404.
func (r *NoteRepo) Delete(ctx context.Context, ownerID, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner, n *model.Note) error {
	return row.Scan(
		&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.ColorHex,
		&n.PositionIndex, &n.DueDate, &n.IsCompleted, &n.CreatedAt, &n.UpdatedAt,
	)
}
