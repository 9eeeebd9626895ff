package pets

import "time"

// Species define las especies soportadas. Es opcional en el perfil.
// @Enum dog, cat, bird, rabbit, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther:
		return true
	default:
		return false
	}
}

// Pet representa el perfil básico de una mascota. Pertenece a un único dueño.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species // opcional
	// PhotoURI apunta a la foto copiada al storage del dispositivo (o a una URL pública).
	PhotoURI string

	CreatedAt time.Time
	UpdatedAt time.Time
}
