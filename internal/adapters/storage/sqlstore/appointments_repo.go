package sqlstore

import (
	"context"

	"pet-care/internal/domain/appointments"
)

const appointmentColumns = `id, pet_id, user_id, date, type, notes, created_at`

type appointmentRepo struct {
	s *Store
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.s.exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES (?,?,?,?,?,?,?)
	`,
		a.ID,
		a.PetID,
		a.OwnerUserID,
		a.Date,
		a.Type,
		a.Notes,
		utc(a.CreatedAt),
	)
	return err
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.s.queryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	a, err := scanAppointment(row)
	if err != nil {
		return appointments.Appointment{}, notFound(err)
	}
	return a, nil
}

func (r *appointmentRepo) ListByPet(ctx context.Context, petID string) ([]appointments.Appointment, error) {
	rows, err := r.s.query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE pet_id = ?
		ORDER BY date DESC, created_at ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *appointmentRepo) Update(ctx context.Context, id string, patch appointments.Patch) (appointments.Appointment, error) {
	var set setClause
	if patch.Date != nil {
		set.add("date", *patch.Date)
	}
	if patch.Type != nil {
		set.add("type", *patch.Type)
	}
	if patch.Notes != nil {
		set.add("notes", *patch.Notes)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}

	row := r.s.queryRow(ctx, `
		UPDATE appointments SET `+set.sql()+`
		WHERE id = ?
		RETURNING `+appointmentColumns,
		append(set.args, id)...,
	)
	a, err := scanAppointment(row)
	if err != nil {
		return appointments.Appointment{}, notFound(err)
	}
	return a, nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, "appointments", id)
}

func scanAppointment(row scanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.OwnerUserID,
		&a.Date,
		&a.Type,
		&a.Notes,
		&a.CreatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}
