package sqlstore

import (
	"context"

	"pet-care/internal/domain/diary"
)

const diaryColumns = `id, user_id, title, date, location, content, sentiment, created_at`

type diaryRepo struct {
	s *Store
}

func (r *diaryRepo) Create(ctx context.Context, e diary.Entry) error {
	_, err := r.s.exec(ctx, `
		INSERT INTO diary_entries (`+diaryColumns+`)
		VALUES (?,?,?,?,?,?,?,?)
	`,
		e.ID,
		e.OwnerUserID,
		e.Title,
		e.Date,
		e.Location,
		e.Content,
		string(e.Sentiment),
		utc(e.CreatedAt),
	)
	return err
}

func (r *diaryRepo) GetByID(ctx context.Context, id string) (diary.Entry, error) {
	row := r.s.queryRow(ctx, `SELECT `+diaryColumns+` FROM diary_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err != nil {
		return diary.Entry{}, notFound(err)
	}
	return e, nil
}

func (r *diaryRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]diary.Entry, error) {
	rows, err := r.s.query(ctx, `
		SELECT `+diaryColumns+`
		FROM diary_entries
		WHERE user_id = ?
		ORDER BY date DESC, created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]diary.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *diaryRepo) Update(ctx context.Context, id string, patch diary.Patch) (diary.Entry, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var set setClause
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Date != nil {
		set.add("date", *patch.Date)
	}
	if patch.Location != nil {
		set.add("location", *patch.Location)
	}
	if patch.Content != nil {
		set.add("content", *patch.Content)
	}
	if patch.Sentiment != nil {
		set.add("sentiment", string(*patch.Sentiment))
	}

	row := r.s.queryRow(ctx, `
		UPDATE diary_entries SET `+set.sql()+`
		WHERE id = ?
		RETURNING `+diaryColumns,
		append(set.args, id)...,
	)
	e, err := scanEntry(row)
	if err != nil {
		return diary.Entry{}, notFound(err)
	}
	return e, nil
}

func (r *diaryRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteByID(ctx, "diary_entries", id)
}

func scanEntry(row scanner) (diary.Entry, error) {
	var (
		e         diary.Entry
		sentiment string
	)
	if err := row.Scan(
		&e.ID,
		&e.OwnerUserID,
		&e.Title,
		&e.Date,
		&e.Location,
		&e.Content,
		&sentiment,
		&e.CreatedAt,
	); err != nil {
		return diary.Entry{}, err
	}
	e.Sentiment = diary.Sentiment(sentiment)
	return e, nil
}
