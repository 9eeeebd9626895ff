// Package storetest es la suite que todo backend de storage debe pasar.
// Se corre desde los tests externos de cada adapter (memory_test, sqlstore_test).
package storetest

import (
	"context"
	"testing"
	"time"

	"pet-care/internal/adapters/storage"
	"pet-care/internal/domain/appointments"
	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory devuelve repos limpios para cada subtest.
type Factory func(t *testing.T) storage.Repos

func Run(t *testing.T, open Factory) {
	t.Run("pets/crud", func(t *testing.T) { testPetsCRUD(t, open(t)) })
	t.Run("pets/order", func(t *testing.T) { testPetsOrder(t, open(t)) })
	t.Run("records/round_trip_every_type", func(t *testing.T) { testRecordsRoundTrip(t, open(t)) })
	t.Run("records/allergy_scenario", func(t *testing.T) { testAllergyScenario(t, open(t)) })
	t.Run("records/vaccine_without_lot", func(t *testing.T) { testVaccineWithoutLot(t, open(t)) })
	t.Run("records/partial_update", func(t *testing.T) { testRecordsPartialUpdate(t, open(t)) })
	t.Run("records/delete", func(t *testing.T) { testRecordsDelete(t, open(t)) })
	t.Run("records/order_and_filter", func(t *testing.T) { testRecordsOrder(t, open(t)) })
	t.Run("records/cascade_on_pet_delete", func(t *testing.T) { testCascade(t, open(t)) })
	t.Run("diary/crud_and_order", func(t *testing.T) { testDiary(t, open(t)) })
	t.Run("appointments/crud_and_order", func(t *testing.T) { testAppointments(t, open(t)) })
}

var base = time.Date(2025, 10, 4, 12, 0, 0, 0, time.UTC)

func createPet(t *testing.T, repos storage.Repos, owner, name string) pets.Pet {
	t.Helper()
	p, err := pets.NewService(repos.Pets).Create(context.Background(), recordstore.Scope{OwnerUserID: owner}, pets.CreateInput{Name: name, Species: pets.SpeciesDog})
	require.NoError(t, err)
	return p
}

func testPetsCRUD(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	svc := pets.NewService(repos.Pets)

	p := createPet(t, repos, "owner-1", "Milo")

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milo", got.Name)
	assert.Equal(t, pets.SpeciesDog, got.Species)
	assert.Equal(t, "owner-1", got.OwnerUserID)

	photo := "file:///photos/milo.jpg"
	updated, err := svc.Update(ctx, p.ID, pets.UpdateInput{PhotoURI: &photo})
	require.NoError(t, err)
	assert.Equal(t, photo, updated.PhotoURI)
	assert.Equal(t, "Milo", updated.Name)
	assert.Equal(t, pets.SpeciesDog, updated.Species)

	name := "Nope"
	_, err = svc.Update(ctx, "missing", pets.UpdateInput{Name: &name})
	assert.ErrorIs(t, err, recordstore.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), recordstore.ErrNotFound)
}

func testPetsOrder(t *testing.T, repos storage.Repos) {
	ctx := context.Background()

	for i, id := range []string{"pet-c", "pet-a", "pet-b"} {
		at := base.Add(time.Duration(i) * time.Minute)
		if id == "pet-b" {
			at = base.Add(time.Minute) // empata con pet-a: decide el id
		}
		require.NoError(t, repos.Pets.Create(ctx, pets.Pet{ID: id, OwnerUserID: "owner-1", Name: id, CreatedAt: at, UpdatedAt: at}))
	}
	require.NoError(t, repos.Pets.Create(ctx, pets.Pet{ID: "pet-x", OwnerUserID: "owner-2", Name: "x", CreatedAt: base, UpdatedAt: base}))

	list, err := repos.Pets.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pet-c", "pet-a", "pet-b"}, petIDs(list))

	empty, err := repos.Pets.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func validDetails() []medicalrecords.Details {
	return []medicalrecords.Details{
		medicalrecords.Allergy{Name: "Pollen", Vet: "Dr. Ortiz", Clinic: "Centro"},
		medicalrecords.Surgery{Name: "Castración", Vet: "Dr. Ortiz", Notes: "Sin complicaciones"},
		medicalrecords.Exam{Name: "Hemograma", Results: "Normal", AttachmentURI: "file:///docs/hemo.pdf"},
		medicalrecords.Medicine{Name: "Amoxicilina", Dose: "250mg", Duration: "7 días"},
		medicalrecords.ParasiteTreatment{Name: "Bravecto", LastDoseDate: civil.MustParse("2025-06-01"), NextDoseDate: civil.MustParse("2025-09-01")},
		medicalrecords.Vaccine{Name: "Rabia", NextDoseDate: civil.MustParse("2026-09-01"), Lot: "L-42"},
	}
}

func testRecordsRoundTrip(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	p := createPet(t, repos, "owner-1", "Milo")
	svc := medicalrecords.NewService(repos.Records)
	scope := recordstore.Scope{OwnerUserID: "owner-1", PetID: p.ID}

	for _, d := range validDetails() {
		created, err := svc.Create(ctx, scope, medicalrecords.CreateInput{Date: civil.MustParse("2025-10-04"), Details: d})
		require.NoError(t, err, d.RecordType())

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err, d.RecordType())
		assert.Equal(t, d.RecordType(), got.Type)
		assert.Equal(t, d, got.Details)
		assert.Equal(t, "2025-10-04", got.Date.String())
		assert.Equal(t, p.ID, got.PetID)
		assert.Equal(t, "owner-1", got.OwnerUserID)
	}
}

func testAllergyScenario(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	p := createPet(t, repos, "owner-1", "Milo")
	svc := medicalrecords.NewService(repos.Records)

	created, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1", PetID: p.ID}, medicalrecords.CreateInput{
		Date:    civil.MustParse("2025-10-04"),
		Details: medicalrecords.Allergy{Name: "Pollen", Vet: "Dr. Ortiz"},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, medicalrecords.TypeAllergy, got.Type)
	a, ok := got.Details.(medicalrecords.Allergy)
	require.True(t, ok)
	assert.Equal(t, "Pollen", a.Name)
	assert.Empty(t, a.Clinic)
}

func testVaccineWithoutLot(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	p := createPet(t, repos, "owner-1", "Milo")
	svc := medicalrecords.NewService(repos.Records)

	created, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1", PetID: p.ID}, medicalrecords.CreateInput{
		Date:    civil.MustParse("2025-10-04"),
		Details: medicalrecords.Vaccine{Name: "Rabies", NextDoseDate: civil.MustParse("2026-01-01")},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	v, ok := got.Details.(medicalrecords.Vaccine)
	require.True(t, ok)
	assert.Empty(t, v.Lot)
	assert.Equal(t, "2026-01-01", v.NextDoseDate.String())
}

func testRecordsPartialUpdate(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	p := createPet(t, repos, "owner-1", "Milo")
	svc := medicalrecords.NewService(repos.Records)

	original := medicalrecords.Medicine{Name: "Amoxicilina", Dose: "250mg", Duration: "7 días"}
	created, err := svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1", PetID: p.ID}, medicalrecords.CreateInput{
		Date:    civil.MustParse("2025-10-04"),
		Details: original,
	})
	require.NoError(t, err)

	// solo la fecha
	newDate := civil.MustParse("2025-10-10")
	got, err := svc.Update(ctx, created.ID, medicalrecords.UpdateInput{Date: &newDate})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-10", got.Date.String())
	assert.Equal(t, original, got.Details)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.PetID, got.PetID)

	// solo details
	changed := medicalrecords.Medicine{Name: "Amoxicilina", Dose: "500mg", Duration: "10 días", Notes: "con comida"}
	got, err = svc.Update(ctx, created.ID, medicalrecords.UpdateInput{Details: changed})
	require.NoError(t, err)
	assert.Equal(t, changed, got.Details)
	assert.Equal(t, "2025-10-10", got.Date.String())

	// el tipo no cambia
	_, err = svc.Update(ctx, created.ID, medicalrecords.UpdateInput{Details: medicalrecords.Allergy{Name: "x"}})
	assert.ErrorIs(t, err, medicalrecords.ErrTypeImmutable)

	reread, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, changed, reread.Details)

	_, err = svc.Update(ctx, "missing", medicalrecords.UpdateInput{Date: &newDate})
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func testRecordsDelete(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	p := createPet(t, repos, "owner-1", "Milo")
	svc := medicalrecords.NewService(repos.Records)
	scope := recordstore.Scope{OwnerUserID: "owner-1", PetID: p.ID}

	keep, err := svc.Create(ctx, scope, medicalrecords.CreateInput{Date: civil.MustParse("2025-10-01"), Details: medicalrecords.Allergy{Name: "Pollen"}})
	require.NoError(t, err)
	gone, err := svc.Create(ctx, scope, medicalrecords.CreateInput{Date: civil.MustParse("2025-10-02"), Details: medicalrecords.Allergy{Name: "Polvo"}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, gone.ID))

	_, err = svc.Get(ctx, gone.ID)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, gone.ID), recordstore.ErrNotFound)

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func testRecordsOrder(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	p := createPet(t, repos, "owner-1", "Milo")

	add := func(id, date string, createdOffset time.Duration, d medicalrecords.Details) {
		t.Helper()
		require.NoError(t, repos.Records.Create(ctx, medicalrecords.Record{
			ID:          id,
			PetID:       p.ID,
			OwnerUserID: "owner-1",
			CreatedAt:   base.Add(createdOffset),
			Type:        d.RecordType(),
			Date:        civil.MustParse(date),
			Details:     d,
		}))
	}
	add("rec-a", "2025-01-01", 0, medicalrecords.Allergy{Name: "a"})
	add("rec-b", "2025-03-01", time.Second, medicalrecords.Vaccine{Name: "b", NextDoseDate: civil.MustParse("2026-03-01")})
	// mismo día: gana el que se creó primero, y a igual created_at el id menor
	add("rec-d", "2025-02-01", 2*time.Second, medicalrecords.Exam{Name: "d"})
	add("rec-c", "2025-02-01", 3*time.Second, medicalrecords.Allergy{Name: "c"})
	add("rec-e", "2025-02-01", 3*time.Second, medicalrecords.Exam{Name: "e"})

	list, err := repos.Records.ListByPet(ctx, p.ID, medicalrecords.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"rec-b", "rec-d", "rec-c", "rec-e", "rec-a"}, recordIDs(list))

	filtered, err := repos.Records.ListByPet(ctx, p.ID, medicalrecords.ListFilter{
		Types: []medicalrecords.RecordType{medicalrecords.TypeExam, medicalrecords.TypeVaccine},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rec-b", "rec-d", "rec-e"}, recordIDs(filtered))
}

func testCascade(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	p := createPet(t, repos, "owner-1", "Milo")
	other := createPet(t, repos, "owner-1", "Luna")

	records := medicalrecords.NewService(repos.Records)
	appts := appointments.NewService(repos.Appointments)

	rec, err := records.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1", PetID: p.ID}, medicalrecords.CreateInput{Date: civil.MustParse("2025-10-04"), Details: medicalrecords.Allergy{Name: "Pollen"}})
	require.NoError(t, err)
	appt, err := appts.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1", PetID: p.ID}, appointments.CreateInput{Date: civil.MustParse("2025-11-01"), Type: "control"})
	require.NoError(t, err)
	otherRec, err := records.Create(ctx, recordstore.Scope{OwnerUserID: "owner-1", PetID: other.ID}, medicalrecords.CreateInput{Date: civil.MustParse("2025-10-04"), Details: medicalrecords.Allergy{Name: "Polvo"}})
	require.NoError(t, err)

	require.NoError(t, pets.NewService(repos.Pets).Delete(ctx, p.ID))

	_, err = records.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
	_, err = appts.Get(ctx, appt.ID)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)

	_, err = records.Get(ctx, otherRec.ID)
	assert.NoError(t, err)
}

func testDiary(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	svc := diary.NewService(repos.Diary)
	scope := recordstore.Scope{OwnerUserID: "owner-1"}

	first, err := svc.Create(ctx, scope, diary.CreateInput{Title: "Paseo", Date: civil.MustParse("2025-10-01"), Content: "Parque", Sentiment: diary.SentimentHappy})
	require.NoError(t, err)
	second, err := svc.Create(ctx, scope, diary.CreateInput{Title: "Vet", Date: civil.MustParse("2025-10-03"), Content: "Control", Location: "Clínica"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, recordstore.Scope{OwnerUserID: "owner-2"}, diary.CreateInput{Title: "Otro", Date: civil.MustParse("2025-10-05"), Content: "x"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	title := "Paseo largo"
	got, err := svc.Update(ctx, first.ID, diary.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, "Parque", got.Content)
	assert.Equal(t, diary.SentimentHappy, got.Sentiment)
	assert.Equal(t, "2025-10-01", got.Date.String())

	require.NoError(t, svc.Delete(ctx, first.ID))
	_, err = svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)

	list, err = svc.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func testAppointments(t *testing.T, repos storage.Repos) {
	ctx := context.Background()
	p := createPet(t, repos, "owner-1", "Milo")
	svc := appointments.NewService(repos.Appointments)
	scope := recordstore.Scope{OwnerUserID: "owner-1", PetID: p.ID}

	early, err := svc.Create(ctx, scope, appointments.CreateInput{Date: civil.MustParse("2025-11-01"), Type: "control", Notes: "ayuno"})
	require.NoError(t, err)
	late, err := svc.Create(ctx, scope, appointments.CreateInput{Date: civil.MustParse("2025-12-01"), Type: "vacunación"})
	require.NoError(t, err)

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, late.ID, list[0].ID)
	assert.Equal(t, early.ID, list[1].ID)

	notes := ""
	got, err := svc.Update(ctx, early.ID, appointments.UpdateInput{Notes: &notes})
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
	assert.Equal(t, "control", got.Type)
	assert.Equal(t, "2025-11-01", got.Date.String())

	require.NoError(t, svc.Delete(ctx, early.ID))
	assert.ErrorIs(t, svc.Delete(ctx, early.ID), recordstore.ErrNotFound)
}

func petIDs(in []pets.Pet) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		out = append(out, p.ID)
	}
	return out
}

func recordIDs(in []medicalrecords.Record) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		out = append(out, r.ID)
	}
	return out
}
