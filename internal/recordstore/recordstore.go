// Package recordstore define el contrato CRUD común a todas las entidades
// persistidas (mascotas, registros médicos, diario, citas) y un shim
// "lenient" que conserva la convención nil/vacío/false para consumidores
// que solo quieren pintar lo que haya.
package recordstore

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven todos los adapters (memory, sql, supabase)
// cuando el registro no existe. Permite distinguir "no hay" de "falló".
var ErrNotFound = errors.New("not found")

// Scope identifica a quién pertenece un registro nuevo:
// el usuario autenticado y, para entidades colgadas de una mascota, el pet.
type Scope struct {
	OwnerUserID string
	PetID       string
}

// Store es el contrato que cumplen los services de dominio.
//   - T: entidad
//   - C: payload de creación
//   - P: payload parcial de actualización (punteros = campos presentes)
type Store[T, C, P any] interface {
	List(ctx context.Context, scopeID string) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, scope Scope, in C) (T, error)
	Update(ctx context.Context, id string, in P) (T, error)
	Delete(ctx context.Context, id string) error
}
