package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pet-care/internal/domain/medicalrecords"
)

const recordColumns = `id, pet_id, user_id, type, date, details, created_at`

type recordRepo struct {
	s *Store
}

func (r *recordRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	details, err := encodeDetails(rec.Details)
	if err != nil {
		return err
	}
	_, err = r.s.exec(ctx, `
		INSERT INTO medical_records (`+recordColumns+`)
		VALUES (?,?,?,?,?,?,?)
	`,
		rec.ID,
		rec.PetID,
		rec.OwnerUserID,
		string(rec.Type),
		rec.Date,
		details,
		utc(rec.CreatedAt),
	)
	return err
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (medicalrecords.Record, error) {
	row := r.s.queryRow(ctx, `SELECT `+recordColumns+` FROM medical_records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err != nil {
		return medicalrecords.Record{}, notFound(err)
	}
	return rec, nil
}

func (r *recordRepo) ListByPet(ctx context.Context, petID string, filter medicalrecords.ListFilter) ([]medicalrecords.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM medical_records WHERE pet_id = ?`
	args := []any{petID}
	if len(filter.Types) > 0 {
		marks := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			marks = append(marks, "?")
			args = append(args, string(t))
		}
		q += ` AND type IN (` + strings.Join(marks, ",") + `)`
	}
	q += ` ORDER BY date DESC, created_at ASC, id ASC`

	rows, err := r.s.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicalrecords.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *recordRepo) Update(ctx context.Context, id string, patch medicalrecords.Patch) (medicalrecords.Record, error) {
	var set setClause
	if patch.Date != nil {
		set.add("date", *patch.Date)
	}
	if patch.Details != nil {
		details, err := encodeDetails(patch.Details)
		if err != nil {
			return medicalrecords.Record{}, err
		}
		set.add("details", details)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}

	row := r.s.queryRow(ctx, `
		UPDATE medical_records SET `+set.sql()+`
		WHERE id = ?
		RETURNING `+recordColumns,
		append(set.args, id)...,
	)
	rec, err := scanRecord(row)
	if err != nil {
		return medicalrecords.Record{}, notFound(err)
	}
	return rec, nil
}

func (r *recordRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, "medical_records", id)
}

func encodeDetails(d medicalrecords.Details) (string, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode details: %w", err)
	}
	return string(b), nil
}

func scanRecord(row scanner) (medicalrecords.Record, error) {
	var (
		rec     medicalrecords.Record
		typ     string
		details []byte
	)
	if err := row.Scan(
		&rec.ID,
		&rec.PetID,
		&rec.OwnerUserID,
		&typ,
		&rec.Date,
		&details,
		&rec.CreatedAt,
	); err != nil {
		return medicalrecords.Record{}, err
	}
	rec.Type = medicalrecords.RecordType(typ)

	d, err := medicalrecords.DecodeDetails(rec.Type, details)
	if err != nil {
		return medicalrecords.Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.Details = d
	return rec, nil
}
