package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/middleware"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/model"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/queue"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/repository"
)

// NoteHandler bundles dependencies for the note endpoints. Every route
// here sits behind middleware.JWTAuth, so the owner id is always taken
// from the resolved user and never from the request body. Cache and
// Publish are optional; nil disables the corresponding feature.
type NoteHandler struct {
	Notes   *repository.NoteRepo
	Cache   *middleware.NotesCache
	Publish func(ctx context.Context, ev queue.NoteActivityEvent) error
}

func NewNoteHandler(notes *repository.NoteRepo) *NoteHandler {
	return &NoteHandler{Notes: notes}
}

// ----- DTOs -----

// createNoteReq mirrors the wire shape of a new note. All fields are
// optional; defaults are applied below. owner_id is deliberately not
// bindable.
type createNoteReq struct {
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	ColorHex      *string    `json:"color_hex"`
	PositionIndex *int       `json:"position_index"`
	DueDate       *time.Time `json:"due_date"`
	IsCompleted   *bool      `json:"is_completed"`
}

// updateNoteReq is the PATCH-merge body: only fields present in the
// JSON change the stored note, everything else keeps its prior value.
type updateNoteReq struct {
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	ColorHex      *string    `json:"color_hex"`
	PositionIndex *int       `json:"position_index"`
	DueDate       *time.Time `json:"due_date"`
	IsCompleted   *bool      `json:"is_completed"`
}

type noteResp struct {
	ID            uint64     `json:"id"`
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	ColorHex      string     `json:"color_hex"`
	PositionIndex int        `json:"position_index"`
	DueDate       *time.Time `json:"due_date"`
	IsCompleted   bool       `json:"is_completed"`
	OwnerID       uint64     `json:"owner_id"`
}

func noteToResponse(n *model.Note) noteResp {
	return noteResp{
		ID:            n.ID,
		Title:         n.Title,
		Content:       n.Content,
		ColorHex:      n.ColorHex,
		PositionIndex: n.PositionIndex,
		DueDate:       n.DueDate,
		IsCompleted:   n.IsCompleted,
		OwnerID:       n.OwnerID,
	}
}

// Create handles POST /notes/ and creates a note for the authenticated
// owner. Missing fields get their defaults: sticky yellow, position 0,
// not completed.
func (h *NoteHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	n := &model.Note{
		OwnerID:  u.ID,
		Title:    req.Title,
		Content:  req.Content,
		ColorHex: model.DefaultNoteColor,
		DueDate:  req.DueDate,
	}
	if req.ColorHex != nil {
		n.ColorHex = *req.ColorHex
	}
	if req.PositionIndex != nil {
		n.PositionIndex = *req.PositionIndex
	}
	if req.IsCompleted != nil {
		n.IsCompleted = *req.IsCompleted
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Notes.Create(ctx, n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create note failed"})
	}

	h.afterMutation(c, queue.ActionCreated, n)
	return c.JSON(http.StatusCreated, noteToResponse(n))
}

// List handles GET /notes/ and returns every note the caller owns,
// ordered by position_index ascending. An owner with no notes gets an
// empty array, not null.
func (h *NoteHandler) List(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Notes.ListByOwner(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notes failed"})
	}

	resp := make([]noteResp, 0, len(items))
	for _, n := range items {
		resp = append(resp, noteToResponse(n))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /notes/:id. The body is merged field by field into
// the stored note; a note that is missing or owned by someone else is a
// plain 404 either way.
func (h *NoteHandler) Update(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	n, err := h.Notes.Update(ctx, u.ID, id, repository.NotePatch{
		Title:         req.Title,
		Content:       req.Content,
		ColorHex:      req.ColorHex,
		PositionIndex: req.PositionIndex,
		DueDate:       req.DueDate,
		IsCompleted:   req.IsCompleted,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update note failed"})
	}

	h.afterMutation(c, queue.ActionUpdated, n)
	return c.JSON(http.StatusOK, noteToResponse(n))
}

// Delete handles DELETE /notes/:id. Deleting a missing or foreign note
// yields 404; a second delete of the same id yields 404 again, never an
// error.
func (h *NoteHandler) Delete(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	deleted, err := h.Notes.Delete(ctx, u.ID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete note failed"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
	}

	h.afterMutation(c, queue.ActionDeleted, &model.Note{ID: id, OwnerID: u.ID})
	return c.NoContent(http.StatusNoContent)
}

// afterMutation drops the owner's cached list and publishes an activity
// event. Both are best effort and never affect the response.
func (h *NoteHandler) afterMutation(c echo.Context, action string, n *model.Note) {
	if h.Cache != nil {
		h.Cache.Invalidate(c, n.OwnerID)
	}
	if h.Publish != nil {
		_ = h.Publish(c.Request().Context(), queue.NoteActivityEvent{
			Action:     action,
			NoteID:     n.ID,
			OwnerID:    n.OwnerID,
			Title:      n.Title,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
