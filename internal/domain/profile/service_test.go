package profile

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/platform/civil"
	"pet-care/internal/platform/i18n"
	"pet-care/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPets map[string]pets.Pet

func (s stubPets) Get(ctx context.Context, id string) (pets.Pet, error) {
	p, ok := s[id]
	if !ok {
		return pets.Pet{}, recordstore.ErrNotFound
	}
	return p, nil
}

// stubRecords solo implementa List; el resto no lo usa el perfil.
type stubRecords struct {
	items []medicalrecords.Record
	err   error
}

func (s stubRecords) List(ctx context.Context, petID string) ([]medicalrecords.Record, error) {
	return s.items, s.err
}

func (s stubRecords) Get(ctx context.Context, id string) (medicalrecords.Record, error) {
	return medicalrecords.Record{}, recordstore.ErrNotFound
}

func (s stubRecords) Create(ctx context.Context, scope recordstore.Scope, in medicalrecords.CreateInput) (medicalrecords.Record, error) {
	return medicalrecords.Record{}, errors.New("not supported")
}

func (s stubRecords) Update(ctx context.Context, id string, in medicalrecords.UpdateInput) (medicalrecords.Record, error) {
	return medicalrecords.Record{}, errors.New("not supported")
}

func (s stubRecords) Delete(ctx context.Context, id string) error {
	return errors.New("not supported")
}

func record(date string, d medicalrecords.Details) medicalrecords.Record {
	return medicalrecords.Record{PetID: "pet-1", Type: d.RecordType(), Date: civil.MustParse(date), Details: d}
}

func newTestService(records stubRecords) *Service {
	ps := stubPets{"pet-1": {ID: "pet-1", OwnerUserID: "owner-1", Name: "Milo", Species: pets.SpeciesDog}}
	lenient := recordstore.NewLenient[medicalrecords.Record, medicalrecords.CreateInput, medicalrecords.UpdateInput]("medical_records", records, nil)
	return NewService(ps, lenient, i18n.MustLoad())
}

func TestService_Build_LatestDosePerName(t *testing.T) {
	svc := newTestService(stubRecords{items: []medicalrecords.Record{
		// ya en orden date DESC, como lo entrega el store
		record("2025-09-01", medicalrecords.Vaccine{Name: "Rabia", NextDoseDate: civil.MustParse("2026-09-01")}),
		record("2025-06-01", medicalrecords.ParasiteTreatment{Name: "Bravecto", LastDoseDate: civil.MustParse("2025-06-01"), NextDoseDate: civil.MustParse("2025-09-01")}),
		record("2025-03-01", medicalrecords.Allergy{Name: "Pollen"}),
		record("2024-09-01", medicalrecords.Vaccine{Name: "rabia", NextDoseDate: civil.MustParse("2025-09-01")}),
		record("2024-05-01", medicalrecords.Exam{Name: "Hemograma"}),
		record("2024-01-01", medicalrecords.Allergy{Name: "pollen "}),
	}})

	card, err := svc.Build(context.Background(), "pet-1", "es")
	require.NoError(t, err)

	assert.Equal(t, "Milo", card.Name)
	assert.Equal(t, "Perro", card.SpeciesLabel)
	require.Len(t, card.Vaccines, 1)
	assert.Equal(t, "2026-09-01", card.Vaccines[0].NextDoseDate.String())
	require.Len(t, card.Parasites, 1)
	assert.Equal(t, []string{"Pollen"}, card.Allergies)

	text := svc.Text(card)
	assert.Contains(t, text, "Perfil de Milo")
	assert.Contains(t, text, "Rabia (próxima dosis 2026-09-01)")
	assert.Contains(t, text, "Alergias: Pollen")
}

func TestService_Build_RecordsFailureStillRenders(t *testing.T) {
	svc := newTestService(stubRecords{err: errors.New("connection refused")})

	card, err := svc.Build(context.Background(), "pet-1", "en")
	require.NoError(t, err)
	assert.False(t, card.HasMedical())
	assert.Equal(t, "en", card.Lang)
	assert.Contains(t, svc.Text(card), "No medical records")
}

func TestService_Build_MissingPet(t *testing.T) {
	svc := newTestService(stubRecords{})

	_, err := svc.Build(context.Background(), "nope", "es")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestService_QR_IsPNG(t *testing.T) {
	svc := newTestService(stubRecords{})

	card, err := svc.Build(context.Background(), "pet-1", "es")
	require.NoError(t, err)

	b, err := svc.QR(card, 10)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, MinQRSize, img.Bounds().Dx())
}
