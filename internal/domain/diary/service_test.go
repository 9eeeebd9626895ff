package diary

import (
	"context"
	"testing"
	"time"

	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo guarda una sola entrada; alcanza para probar las reglas del service.
type stubRepo struct {
	saved   *Entry
	patches []Patch
}

func (r *stubRepo) Create(ctx context.Context, e Entry) error {
	r.saved = &e
	return nil
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (Entry, error) {
	if r.saved == nil || r.saved.ID != id {
		return Entry{}, recordstore.ErrNotFound
	}
	return *r.saved, nil
}

func (r *stubRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Entry, error) {
	if r.saved == nil || r.saved.OwnerUserID != ownerUserID {
		return []Entry{}, nil
	}
	return []Entry{*r.saved}, nil
}

func (r *stubRepo) Update(ctx context.Context, id string, patch Patch) (Entry, error) {
	r.patches = append(r.patches, patch)
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Content != nil {
		e.Content = *patch.Content
	}
	if patch.Sentiment != nil {
		e.Sentiment = *patch.Sentiment
	}
	r.saved = &e
	return e, nil
}

func (r *stubRepo) Delete(ctx context.Context, id string) error {
	if r.saved == nil || r.saved.ID != id {
		return recordstore.ErrNotFound
	}
	r.saved = nil
	return nil
}

func newTestService() (*Service, *stubRepo) {
	repo := &stubRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 10, 4, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestSentiment_Emoji(t *testing.T) {
	assert.Equal(t, "🤩", SentimentExcited.Emoji())
	assert.Equal(t, "😊", SentimentHappy.Emoji())
	assert.Equal(t, "😢", SentimentSad.Emoji())
	assert.Equal(t, "😠", SentimentAngry.Emoji())
	assert.Equal(t, "", Sentiment("").Emoji())
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	scope := recordstore.Scope{OwnerUserID: "owner-1"}

	e, err := svc.Create(ctx, scope, CreateInput{
		Title:     " Paseo en la playa ",
		Date:      civil.MustParse("2025-10-03"),
		Content:   "Corrió como nunca.",
		Sentiment: "Excited",
	})
	require.NoError(t, err)
	assert.Equal(t, "Paseo en la playa", e.Title)
	assert.Equal(t, SentimentExcited, e.Sentiment)
	assert.Equal(t, "owner-1", e.OwnerUserID)

	_, err = svc.Create(ctx, scope, CreateInput{Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput, "date is required")

	_, err = svc.Create(ctx, scope, CreateInput{Date: civil.MustParse("2025-10-03")})
	assert.ErrorIs(t, err, ErrInvalidInput, "title is required")

	_, err = svc.Create(ctx, scope, CreateInput{Title: "x", Date: civil.MustParse("2025-10-03"), Sentiment: "bored"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_PartialAndClearSentiment(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{
		Title:     "Paseo",
		Date:      civil.MustParse("2025-10-03"),
		Location:  "Parque",
		Content:   "texto",
		Sentiment: SentimentHappy,
	})
	require.NoError(t, err)

	none := Sentiment("")
	updated, err := svc.Update(ctx, e.ID, UpdateInput{Sentiment: &none})
	require.NoError(t, err)

	assert.Empty(t, updated.Sentiment)
	assert.Equal(t, "Paseo", updated.Title)
	assert.Equal(t, "Parque", updated.Location)
	assert.Equal(t, "texto", updated.Content)
	assert.Equal(t, e.Date, updated.Date)

	require.Len(t, repo.patches, 1)
	assert.Nil(t, repo.patches[0].Title)
	assert.Nil(t, repo.patches[0].Date)
}

func TestService_Update_EmptyPatchReadsOnly(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{
		Title: "Paseo",
		Date:  civil.MustParse("2025-10-03"),
	})
	require.NoError(t, err)

	got, err := svc.Update(ctx, e.ID, UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, e, got)
	assert.Empty(t, repo.patches)
}

func TestService_Delete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{
		Title: "Paseo",
		Date:  civil.MustParse("2025-10-03"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err = svc.Get(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
