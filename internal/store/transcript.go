package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Transcript is a saved snapshot of the accumulated text buffer.
type Transcript struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
}

// TranscriptRepository provides CRUD operations for transcripts.
type TranscriptRepository struct {
	db *sql.DB
}

// Transcripts returns the transcript repository for this store.
func (s *Store) Transcripts() *TranscriptRepository {
	return &TranscriptRepository{db: s.db}
}

// Create inserts a new transcript. An empty ID is filled with a fresh UUID.
func (r *TranscriptRepository) Create(tr *Transcript) error {
	if tr.ID == "" {
		tr.ID = uuid.New().String()
	}
	tr.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO transcripts (id, title, content, created_at)
		 VALUES (?, ?, ?, ?)`,
		tr.ID, tr.Title, tr.Content, tr.CreatedAt,
	)
	return err
}

// GetByID retrieves a transcript by its ID.
func (r *TranscriptRepository) GetByID(id string) (*Transcript, error) {
	tr := &Transcript{}

	err := r.db.QueryRow(
		`SELECT id, title, content, created_at FROM transcripts WHERE id = ?`,
		id,
	).Scan(&tr.ID, &tr.Title, &tr.Content, &tr.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return tr, nil
}

// List retrieves all transcripts, newest first.
func (r *TranscriptRepository) List() ([]*Transcript, error) {
	rows, err := r.db.Query(
		`SELECT id, title, content, created_at FROM transcripts
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []*Transcript
	for rows.Next() {
		tr := &Transcript{}
		if err := rows.Scan(&tr.ID, &tr.Title, &tr.Content, &tr.CreatedAt); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, tr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transcripts, nil
}

// Delete removes a transcript by its ID.
func (r *TranscriptRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM transcripts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
