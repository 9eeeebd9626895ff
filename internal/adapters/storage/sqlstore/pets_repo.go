package sqlstore

import (
	"context"
	"strings"

	"pet-care/internal/domain/pets"
)

const petColumns = `id, user_id, name, species, photo_uri, created_at, updated_at`

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.s.exec(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES (?,?,?,?,?,?,?)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.PhotoURI,
		utc(p.CreatedAt),
		utc(p.UpdatedAt),
	)
	return err
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.s.queryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, strings.TrimSpace(id))
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, notFound(err)
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	rows, err := r.s.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *petRepo) Update(ctx context.Context, id string, patch pets.Patch) (pets.Pet, error) {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Species != nil {
		set.add("species", string(*patch.Species))
	}
	if patch.PhotoURI != nil {
		set.add("photo_uri", *patch.PhotoURI)
	}
	set.add("updated_at", utc(patch.UpdatedAt))

	row := r.s.queryRow(ctx, `
		UPDATE pets SET `+set.sql()+`
		WHERE id = ?
		RETURNING `+petColumns,
		append(set.args, id)...,
	)
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, notFound(err)
	}
	return p, nil
}

// Delete arrastra registros médicos y citas vía ON DELETE CASCADE.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, "pets", id)
}

func scanPet(row scanner) (pets.Pet, error) {
	var (
		p       pets.Pet
		species string
	)
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&species,
		&p.PhotoURI,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Species = pets.Species(species)
	return p, nil
}
