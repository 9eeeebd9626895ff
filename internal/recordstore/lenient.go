package recordstore

import (
	"context"
	"errors"

	"pet-care/internal/platform/logger"
)

// Lenient envuelve un Store y traga los errores: los loguea y devuelve
// vacío / nil / false. Es el contrato que esperaba la app original;
// quien necesite distinguir fallas debe usar el Store directo.
type Lenient[T, C, P any] struct {
	store Store[T, C, P]
	log   logger.Logger
}

func NewLenient[T, C, P any](kind string, store Store[T, C, P], log logger.Logger) *Lenient[T, C, P] {
	if log == nil {
		log = logger.Nop()
	}
	return &Lenient[T, C, P]{
		store: store,
		log:   log.With(map[string]any{"kind": kind}),
	}
}

func (l *Lenient[T, C, P]) List(ctx context.Context, scopeID string) []T {
	items, err := l.store.List(ctx, scopeID)
	if err != nil {
		l.log.Error("list failed", map[string]any{"scope_id": scopeID, "error": err})
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (l *Lenient[T, C, P]) Get(ctx context.Context, id string) *T {
	v, err := l.store.Get(ctx, id)
	if err != nil {
		l.failed("get", id, err)
		return nil
	}
	return &v
}

func (l *Lenient[T, C, P]) Create(ctx context.Context, scope Scope, in C) *T {
	v, err := l.store.Create(ctx, scope, in)
	if err != nil {
		l.log.Error("create failed", map[string]any{
			"owner_user_id": scope.OwnerUserID,
			"pet_id":        scope.PetID,
			"error":         err,
		})
		return nil
	}
	return &v
}

func (l *Lenient[T, C, P]) Update(ctx context.Context, id string, in P) *T {
	v, err := l.store.Update(ctx, id, in)
	if err != nil {
		l.failed("update", id, err)
		return nil
	}
	return &v
}

func (l *Lenient[T, C, P]) Delete(ctx context.Context, id string) bool {
	if err := l.store.Delete(ctx, id); err != nil {
		l.failed("delete", id, err)
		return false
	}
	return true
}

func (l *Lenient[T, C, P]) failed(op, id string, err error) {
	// not found es esperable (registro borrado en otro dispositivo), no es un error del sistema
	if errors.Is(err, ErrNotFound) {
		l.log.Warn(op+" not found", map[string]any{"id": id})
		return
	}
	l.log.Error(op+" failed", map[string]any{"id": id, "error": err})
}
