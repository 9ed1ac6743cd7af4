package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/model"
)

func strptr(s string) *string { return &s }

var noteCols = []string{
	"id", "owner_id", "title", "content", "color_hex",
	"position_index", "due_date", "is_completed", "created_at", "updated_at",
}

// title and content are either string or nil, matching nullable columns.
func noteRow(rows *sqlmock.Rows, id, owner uint64, title, content any, pos int) *sqlmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(id, owner, title, content, model.DefaultNoteColor, pos, nil, false, now, now)
}

func TestNoteRepoCreate(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	mock.ExpectExec("INSERT INTO notes").
		WithArgs(uint64(1), "milk", nil, model.DefaultNoteColor, 0, nil, false).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at, updated_at FROM notes WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now().UTC(), time.Now().UTC()))

	n := &model.Note{OwnerID: 1, Title: strptr("milk"), ColorHex: model.DefaultNoteColor}
	if err := r.Create(context.Background(), n); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if n.ID != 5 {
		t.Fatalf("id not populated: %d", n.ID)
	}
	if n.CreatedAt.IsZero() || n.UpdatedAt.IsZero() {
		t.Fatal("timestamps not populated")
	}
}

func TestNoteRepoListByOwner_OrderedByPosition(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	// The ordering clause is part of the contract, so match it literally.
	q := "SELECT " + noteColumns + " FROM notes WHERE owner_id = ? ORDER BY position_index, id"
	rows := sqlmock.NewRows(noteCols)
	rows = noteRow(rows, 2, 1, "b", nil, 1)
	rows = noteRow(rows, 3, 1, "c", nil, 2)
	rows = noteRow(rows, 1, 1, "a", nil, 3)
	mock.ExpectQuery(regexp.QuoteMeta(q)).WithArgs(uint64(1)).WillReturnRows(rows)

	out, err := r.ListByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(out))
	}
	for i, want := range []int{1, 2, 3} {
		if out[i].PositionIndex != want {
			t.Fatalf("position order broken at %d: %+v", i, out[i])
		}
	}
}

func TestNoteRepoListByOwner_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	mock.ExpectQuery("SELECT .+ FROM notes WHERE owner_id").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(noteCols))

	out, err := r.ListByOwner(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no notes, got %d", len(out))
	}
}

func TestNoteRepoUpdate_PartialMerge(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	rows := noteRow(sqlmock.NewRows(noteCols), 5, 1, "x", "y", 0)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FOR UPDATE").
		WithArgs(uint64(5), uint64(1)).
		WillReturnRows(rows)
	// Only content was patched; title keeps its stored value.
	mock.ExpectExec("UPDATE notes SET").
		WithArgs("x", "z", model.DefaultNoteColor, 0, nil, false, uint64(5), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := r.Update(context.Background(), 1, 5, NotePatch{Content: strptr("z")})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if n.Title == nil || *n.Title != "x" {
		t.Fatalf("title must be untouched, got %v", n.Title)
	}
	if n.Content == nil || *n.Content != "z" {
		t.Fatalf("content not updated, got %v", n.Content)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNoteRepoUpdate_NotOwnedBehavesMissing(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	// Owner 2 asking for owner 1's note: the scoped SELECT finds nothing.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FOR UPDATE").
		WithArgs(uint64(5), uint64(2)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if _, err := r.Update(context.Background(), 2, 5, NotePatch{Title: strptr("hijack")}); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteRepoDelete_ReportsWhetherDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	del := regexp.QuoteMeta("DELETE FROM notes WHERE id = ? AND owner_id = ?")

	mock.ExpectExec(del).WithArgs(uint64(5), uint64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	deleted, err := r.Delete(context.Background(), 1, 5)
	if err != nil || !deleted {
		t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
	}

	// Deleting again, or deleting someone else's note, is false, not an error.
	mock.ExpectExec(del).WithArgs(uint64(5), uint64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	deleted, err = r.Delete(context.Background(), 1, 5)
	if err != nil || deleted {
		t.Fatalf("second delete: deleted=%v err=%v", deleted, err)
	}

	mock.ExpectExec(del).WithArgs(uint64(5), uint64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	deleted, err = r.Delete(context.Background(), 2, 5)
	if err != nil || deleted {
		t.Fatalf("foreign delete: deleted=%v err=%v", deleted, err)
	}
}

func TestNoteRepoGetByIDAndOwner_Scoped(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	mock.ExpectQuery("SELECT .+ FROM notes WHERE id = \\? AND owner_id = \\?").
		WithArgs(uint64(5), uint64(2)).
		WillReturnError(sql.ErrNoRows)

	if _, err := r.GetByIDAndOwner(context.Background(), 5, 2); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}
