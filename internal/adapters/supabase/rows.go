package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pet-care/internal/domain/appointments"
	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"
)

// Filas tal como las expone PostgREST (columnas snake_case).

type petRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	PhotoURI  string    `json:"photo_uri"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r petRow) toDomain() pets.Pet {
	return pets.Pet{
		ID:          r.ID,
		OwnerUserID: r.UserID,
		Name:        r.Name,
		Species:     pets.Species(r.Species),
		PhotoURI:    r.PhotoURI,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type recordRow struct {
	ID        string          `json:"id"`
	PetID     string          `json:"pet_id"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"`
	Date      civil.Date      `json:"date"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r recordRow) toDomain() (medicalrecords.Record, error) {
	t := medicalrecords.RecordType(r.Type)
	d, err := medicalrecords.DecodeDetails(t, r.Details)
	if err != nil {
		return medicalrecords.Record{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return medicalrecords.Record{
		ID:          r.ID,
		PetID:       r.PetID,
		OwnerUserID: r.UserID,
		CreatedAt:   r.CreatedAt,
		Type:        t,
		Date:        r.Date,
		Details:     d,
	}, nil
}

type diaryRow struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Date      civil.Date `json:"date"`
	Location  string     `json:"location"`
	Content   string     `json:"content"`
	Sentiment string     `json:"sentiment"`
	CreatedAt time.Time  `json:"created_at"`
}

func (r diaryRow) toDomain() diary.Entry {
	return diary.Entry{
		ID:          r.ID,
		OwnerUserID: r.UserID,
		CreatedAt:   r.CreatedAt,
		Title:       r.Title,
		Date:        r.Date,
		Location:    r.Location,
		Content:     r.Content,
		Sentiment:   diary.Sentiment(r.Sentiment),
	}
}

type appointmentRow struct {
	ID        string     `json:"id"`
	PetID     string     `json:"pet_id"`
	UserID    string     `json:"user_id"`
	Date      civil.Date `json:"date"`
	Type      string     `json:"type"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

func (r appointmentRow) toDomain() appointments.Appointment {
	return appointments.Appointment{
		ID:          r.ID,
		PetID:       r.PetID,
		OwnerUserID: r.UserID,
		CreatedAt:   r.CreatedAt,
		Date:        r.Date,
		Type:        r.Type,
		Notes:       r.Notes,
	}
}

// one trae una sola fila; ninguna es ErrNotFound.
func one[R any](ctx context.Context, c *Client, q *query) (R, error) {
	var rows []R
	if err := c.selectRows(ctx, q.limit("1"), &rows); err != nil {
		var zero R
		return zero, err
	}
	if len(rows) == 0 {
		var zero R
		return zero, recordstore.ErrNotFound
	}
	return rows[0], nil
}

// patchOne aplica el patch a la fila id y devuelve cómo quedó.
func patchOne[R any](ctx context.Context, c *Client, table, id string, body map[string]any) (R, error) {
	var rows []R
	if err := c.patch(ctx, from(table).eq("id", id), body, &rows); err != nil {
		var zero R
		return zero, err
	}
	if len(rows) == 0 {
		var zero R
		return zero, recordstore.ErrNotFound
	}
	return rows[0], nil
}
