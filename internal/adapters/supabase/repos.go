package supabase

import (
	"context"
	"encoding/json"

	"pet-care/internal/domain/appointments"
	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
)

const (
	tablePets         = "pets"
	tableRecords      = "medical_records"
	tableDiary        = "diary_entries"
	tableAppointments = "appointments"
)

type petRepo struct{ c *Client }

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.c.insert(ctx, tablePets, petRow{
		ID:        p.ID,
		UserID:    p.OwnerUserID,
		Name:      p.Name,
		Species:   string(p.Species),
		PhotoURI:  p.PhotoURI,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row, err := one[petRow](ctx, r.c, from(tablePets).sel("*").eq("id", id))
	if err != nil {
		return pets.Pet{}, err
	}
	return row.toDomain(), nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	q := from(tablePets).sel("*").eq("user_id", ownerUserID).
		order("created_at", false).order("id", false)

	var rows []petRow
	if err := r.c.selectRows(ctx, q, &rows); err != nil {
		return nil, err
	}
	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *petRepo) Update(ctx context.Context, id string, patch pets.Patch) (pets.Pet, error) {
	body := map[string]any{"updated_at": patch.UpdatedAt}
	if patch.Name != nil {
		body["name"] = *patch.Name
	}
	if patch.Species != nil {
		body["species"] = string(*patch.Species)
	}
	if patch.PhotoURI != nil {
		body["photo_uri"] = *patch.PhotoURI
	}
	row, err := patchOne[petRow](ctx, r.c, tablePets, id, body)
	if err != nil {
		return pets.Pet{}, err
	}
	return row.toDomain(), nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, tablePets, id)
}

type recordRepo struct{ c *Client }

func (r *recordRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return err
	}
	return r.c.insert(ctx, tableRecords, recordRow{
		ID:        rec.ID,
		PetID:     rec.PetID,
		UserID:    rec.OwnerUserID,
		Type:      string(rec.Type),
		Date:      rec.Date,
		Details:   details,
		CreatedAt: rec.CreatedAt,
	})
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (medicalrecords.Record, error) {
	row, err := one[recordRow](ctx, r.c, from(tableRecords).sel("*").eq("id", id))
	if err != nil {
		return medicalrecords.Record{}, err
	}
	return row.toDomain()
}

func (r *recordRepo) ListByPet(ctx context.Context, petID string, filter medicalrecords.ListFilter) ([]medicalrecords.Record, error) {
	q := from(tableRecords).sel("*").eq("pet_id", petID)
	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		q.in("type", types)
	}
	q.order("date", true).order("created_at", false).order("id", false)

	var rows []recordRow
	if err := r.c.selectRows(ctx, q, &rows); err != nil {
		return nil, err
	}
	out := make([]medicalrecords.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *recordRepo) Update(ctx context.Context, id string, patch medicalrecords.Patch) (medicalrecords.Record, error) {
	body := map[string]any{}
	if patch.Date != nil {
		body["date"] = *patch.Date
	}
	if patch.Details != nil {
		body["details"] = patch.Details
	}
	if len(body) == 0 {
		return r.GetByID(ctx, id)
	}
	row, err := patchOne[recordRow](ctx, r.c, tableRecords, id, body)
	if err != nil {
		return medicalrecords.Record{}, err
	}
	return row.toDomain()
}

func (r *recordRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, tableRecords, id)
}

type diaryRepo struct{ c *Client }

func (r *diaryRepo) Create(ctx context.Context, e diary.Entry) error {
	return r.c.insert(ctx, tableDiary, diaryRow{
		ID:        e.ID,
		UserID:    e.OwnerUserID,
		Title:     e.Title,
		Date:      e.Date,
		Location:  e.Location,
		Content:   e.Content,
		Sentiment: string(e.Sentiment),
		CreatedAt: e.CreatedAt,
	})
}

func (r *diaryRepo) GetByID(ctx context.Context, id string) (diary.Entry, error) {
	row, err := one[diaryRow](ctx, r.c, from(tableDiary).sel("*").eq("id", id))
	if err != nil {
		return diary.Entry{}, err
	}
	return row.toDomain(), nil
}

func (r *diaryRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]diary.Entry, error) {
	q := from(tableDiary).sel("*").eq("user_id", ownerUserID).
		order("date", true).order("created_at", false).order("id", false)

	var rows []diaryRow
	if err := r.c.selectRows(ctx, q, &rows); err != nil {
		return nil, err
	}
	out := make([]diary.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *diaryRepo) Update(ctx context.Context, id string, patch diary.Patch) (diary.Entry, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	body := map[string]any{}
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.Date != nil {
		body["date"] = *patch.Date
	}
	if patch.Location != nil {
		body["location"] = *patch.Location
	}
	if patch.Content != nil {
		body["content"] = *patch.Content
	}
	if patch.Sentiment != nil {
		body["sentiment"] = string(*patch.Sentiment)
	}
	row, err := patchOne[diaryRow](ctx, r.c, tableDiary, id, body)
	if err != nil {
		return diary.Entry{}, err
	}
	return row.toDomain(), nil
}

func (r *diaryRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, tableDiary, id)
}

type appointmentRepo struct{ c *Client }

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	return r.c.insert(ctx, tableAppointments, appointmentRow{
		ID:        a.ID,
		PetID:     a.PetID,
		UserID:    a.OwnerUserID,
		Date:      a.Date,
		Type:      a.Type,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
	})
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row, err := one[appointmentRow](ctx, r.c, from(tableAppointments).sel("*").eq("id", id))
	if err != nil {
		return appointments.Appointment{}, err
	}
	return row.toDomain(), nil
}

func (r *appointmentRepo) ListByPet(ctx context.Context, petID string) ([]appointments.Appointment, error) {
	q := from(tableAppointments).sel("*").eq("pet_id", petID).
		order("date", true).order("created_at", false).order("id", false)

	var rows []appointmentRow
	if err := r.c.selectRows(ctx, q, &rows); err != nil {
		return nil, err
	}
	out := make([]appointments.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *appointmentRepo) Update(ctx context.Context, id string, patch appointments.Patch) (appointments.Appointment, error) {
	body := map[string]any{}
	if patch.Date != nil {
		body["date"] = *patch.Date
	}
	if patch.Type != nil {
		body["type"] = *patch.Type
	}
	if patch.Notes != nil {
		body["notes"] = *patch.Notes
	}
	if len(body) == 0 {
		return r.GetByID(ctx, id)
	}
	row, err := patchOne[appointmentRow](ctx, r.c, tableAppointments, id, body)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return row.toDomain(), nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, tableAppointments, id)
}
