package model

import "time"

// DefaultNoteColor is the sticky note yellow applied when a note is
// created without an explicit color.
const DefaultNoteColor = "#ffeb3b"

// Note represents a sticky note row in the `notes` table. Every note
// belongs to exactly one user via OwnerID; repository queries always
// filter on that column so a note is never visible outside its owner's
// session. Title, Content and DueDate are nullable in the schema and
// therefore pointers here.
type Note struct {
	ID            uint64     // notes.id
	OwnerID       uint64     // notes.owner_id (references users.id)
	Title         *string    // notes.title (nullable)
	Content       *string    // notes.content (nullable)
	ColorHex      string     // notes.color_hex
	PositionIndex int        // notes.position_index (drag-and-drop ordering key)
	DueDate       *time.Time // notes.due_date (nullable)
	IsCompleted   bool       // notes.is_completed
	CreatedAt     time.Time  // notes.created_at
	UpdatedAt     time.Time  // notes.updated_at
}
