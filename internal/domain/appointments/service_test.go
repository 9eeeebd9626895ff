package appointments

import (
	"context"
	"testing"
	"time"

	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Appointment
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, recordstore.ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if a.PetID == petID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, id string, patch Patch) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, recordstore.ErrNotFound
	}
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Type != nil {
		a.Type = *patch.Type
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	r.byID[id] = a
	return a, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return recordstore.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService() *Service {
	svc := NewService(&testRepo{byID: map[string]Appointment{}})
	svc.now = func() time.Time { return time.Date(2025, 10, 4, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Create_RequiresDateAndType(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	scope := recordstore.Scope{OwnerUserID: "owner-1", PetID: "pet-1"}

	_, err := svc.Create(ctx, scope, CreateInput{Type: "control"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, scope, CreateInput{Date: civil.MustParse("2025-11-20"), Type: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1"}, CreateInput{Date: civil.MustParse("2025-11-20"), Type: "control"})
	assert.ErrorIs(t, err, ErrInvalidInput, "pet is required")

	a, err := svc.Create(ctx, scope, CreateInput{Date: civil.MustParse("2025-11-20"), Type: " control ", Notes: "en ayunas"})
	require.NoError(t, err)
	assert.Equal(t, "control", a.Type)
	assert.Equal(t, "pet-1", a.PetID)
	assert.Equal(t, "owner-1", a.OwnerUserID)
}

func TestService_Update_Partial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1", PetID: "pet-1"}, CreateInput{
		Date:  civil.MustParse("2025-11-20"),
		Type:  "control",
		Notes: "en ayunas",
	})
	require.NoError(t, err)

	d := civil.MustParse("2025-11-27")
	updated, err := svc.Update(ctx, a.ID, UpdateInput{Date: &d})
	require.NoError(t, err)
	assert.Equal(t, d, updated.Date)
	assert.Equal(t, "control", updated.Type)
	assert.Equal(t, "en ayunas", updated.Notes)

	empty := ""
	_, err = svc.Update(ctx, a.ID, UpdateInput{Type: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, "missing", UpdateInput{Notes: &empty})
	assert.ErrorIs(t, err, ErrNotFound)
}
