package recordstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   string
	Text string
}

// failingStore simula un backend caído (red, RLS, etc.).
type failingStore struct {
	err error
}

func (s failingStore) List(ctx context.Context, scopeID string) ([]note, error) { return nil, s.err }
func (s failingStore) Get(ctx context.Context, id string) (note, error)         { return note{}, s.err }
func (s failingStore) Create(ctx context.Context, scope Scope, in string) (note, error) {
	return note{}, s.err
}
func (s failingStore) Update(ctx context.Context, id string, in *string) (note, error) {
	return note{}, s.err
}
func (s failingStore) Delete(ctx context.Context, id string) error { return s.err }

type okStore struct{}

func (okStore) List(ctx context.Context, scopeID string) ([]note, error) { return nil, nil }
func (okStore) Get(ctx context.Context, id string) (note, error)         { return note{ID: id}, nil }
func (okStore) Create(ctx context.Context, scope Scope, in string) (note, error) {
	return note{ID: "n-1", Text: in}, nil
}
func (okStore) Update(ctx context.Context, id string, in *string) (note, error) {
	return note{ID: id, Text: *in}, nil
}
func (okStore) Delete(ctx context.Context, id string) error { return nil }

func TestLenient_FailedFetchReturnsEmptyList(t *testing.T) {
	l := NewLenient[note, string, *string]("notes", failingStore{err: errors.New("connection refused")}, nil)

	items := l.List(context.Background(), "pet-1")
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLenient_FailuresBecomeSentinels(t *testing.T) {
	ctx := context.Background()
	text := "x"

	for _, err := range []error{errors.New("boom"), ErrNotFound} {
		l := NewLenient[note, string, *string]("notes", failingStore{err: err}, nil)

		assert.Nil(t, l.Get(ctx, "n-1"))
		assert.Nil(t, l.Create(ctx, Scope{OwnerUserID: "u-1"}, "hola"))
		assert.Nil(t, l.Update(ctx, "n-1", &text))
		assert.False(t, l.Delete(ctx, "n-1"))
	}
}

func TestLenient_PassesThroughOnSuccess(t *testing.T) {
	ctx := context.Background()
	l := NewLenient[note, string, *string]("notes", okStore{}, nil)

	assert.Equal(t, []note{}, l.List(ctx, "pet-1"))

	got := l.Get(ctx, "n-7")
	require.NotNil(t, got)
	assert.Equal(t, "n-7", got.ID)

	created := l.Create(ctx, Scope{OwnerUserID: "u-1"}, "hola")
	require.NotNil(t, created)
	assert.Equal(t, "hola", created.Text)

	text := "editado"
	updated := l.Update(ctx, "n-1", &text)
	require.NotNil(t, updated)
	assert.Equal(t, "editado", updated.Text)

	assert.True(t, l.Delete(ctx, "n-1"))
}
