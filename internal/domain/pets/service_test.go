package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Pet
	updates int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, recordstore.ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, id string, patch Patch) (Pet, error) {
	r.updates++
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, recordstore.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Species != nil {
		p.Species = *patch.Species
	}
	if patch.PhotoURI != nil {
		p.PhotoURI = *patch.PhotoURI
	}
	p.UpdatedAt = patch.UpdatedAt
	r.byID[id] = p
	return p, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return recordstore.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	now := time.Date(2025, 10, 4, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestService_Create_NormalizesAndStamps(t *testing.T) {
	svc, repo := newTestService()

	p, err := svc.Create(context.Background(), recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{
		Name:    "  Milo ",
		Species: "DOG",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Milo", p.Name)
	assert.Equal(t, SpeciesDog, p.Species)
	assert.Equal(t, "owner-1", p.OwnerUserID)
	assert.Equal(t, svc.now(), p.CreatedAt)
	assert.Contains(t, repo.byID, p.ID)
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, recordstore.Scope{}, CreateInput{Name: "Milo"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{Name: "Milo", Species: "dragon"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// species es opcional
	p, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{Name: "Milo"})
	require.NoError(t, err)
	assert.Empty(t, p.Species)
}

func TestService_Update_OnlyTouchesPresentFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{
		Name:     "Milo",
		Species:  SpeciesCat,
		PhotoURI: "file:///photos/milo.jpg",
	})
	require.NoError(t, err)

	later := svc.now().Add(time.Hour)
	svc.now = func() time.Time { return later }

	name := "Milo II"
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Milo II", updated.Name)
	assert.Equal(t, SpeciesCat, updated.Species)
	assert.Equal(t, "file:///photos/milo.jpg", updated.PhotoURI)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
}

func TestService_Update_EmptyPatchDoesNotWrite(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{Name: "Milo"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, p.ID, UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, 0, repo.updates)
}

func TestService_Update_RejectsBlankName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{Name: "Milo"})
	require.NoError(t, err)

	blank := " "
	_, err = svc.Update(ctx, p.ID, UpdateInput{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Delete_ThenGetIsNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{Name: "Milo"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	owner, err := svc.OwnerOf(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, owner)
}
