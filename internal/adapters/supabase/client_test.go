package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/platform/civil"
	"pet-care/internal/ports/auth"
	"pet-care/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captured guarda lo último que recibió el PostgREST falso.
type captured struct {
	method string
	path   string
	query  map[string][]string
	header http.Header
	body   string
}

func fakeServer(t *testing.T, status int, response string) (*Client, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.Query()
		got.header = r.Header.Clone()
		got.body = string(b)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{URL: srv.URL, AnonKey: "anon-key"})
	require.NoError(t, err)
	return c, got
}

func TestNew_RequiresURLAndKey(t *testing.T) {
	_, err := New(Config{URL: "", AnonKey: "k"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(Config{URL: "https://x.supabase.co", AnonKey: " "})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPets_GetByID_ForwardsUserToken(t *testing.T) {
	c, got := fakeServer(t, http.StatusOK, `[{"id":"pet-1","user_id":"user-1","name":"Milo","species":"dog","photo_uri":null,"created_at":"2025-10-04T12:00:00.123456+00:00","updated_at":"2025-10-04T12:00:00+00:00"}]`)

	ctx := auth.WithToken(context.Background(), "user-jwt")
	p, err := c.Pets().GetByID(ctx, "pet-1")
	require.NoError(t, err)

	assert.Equal(t, "Milo", p.Name)
	assert.Equal(t, pets.SpeciesDog, p.Species)
	assert.Equal(t, "user-1", p.OwnerUserID)
	assert.Empty(t, p.PhotoURI)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/rest/v1/pets", got.path)
	assert.Equal(t, []string{"eq.pet-1"}, got.query["id"])
	assert.Equal(t, []string{"1"}, got.query["limit"])
	assert.Equal(t, "anon-key", got.header.Get("apikey"))
	assert.Equal(t, "Bearer user-jwt", got.header.Get("Authorization"))
}

func TestPets_GetByID_EmptyIsNotFound(t *testing.T) {
	c, got := fakeServer(t, http.StatusOK, `[]`)

	_, err := c.Pets().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
	// sin token en el contexto va la anon key
	assert.Equal(t, "Bearer anon-key", got.header.Get("Authorization"))
}

func TestRecords_ListByPet_FilterAndOrder(t *testing.T) {
	c, got := fakeServer(t, http.StatusOK, `[
		{"id":"r1","pet_id":"pet-1","user_id":"user-1","type":"vaccine","date":"2025-09-01","details":{"name":"Rabia","nextDoseDate":"2026-09-01","extra":"ignored"},"created_at":"2025-09-01T10:00:00Z"},
		{"id":"r2","pet_id":"pet-1","user_id":"user-1","type":"exam","date":"2025-08-01","details":{"name":"Hemograma"},"created_at":"2025-08-01T10:00:00Z"}
	]`)

	list, err := c.Records().ListByPet(context.Background(), "pet-1", medicalrecords.ListFilter{
		Types: []medicalrecords.RecordType{medicalrecords.TypeVaccine, medicalrecords.TypeExam},
	})
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, medicalrecords.Vaccine{Name: "Rabia", NextDoseDate: civil.MustParse("2026-09-01")}, list[0].Details)
	assert.Equal(t, medicalrecords.TypeExam, list[1].Type)

	assert.Equal(t, "/rest/v1/medical_records", got.path)
	assert.Equal(t, []string{"eq.pet-1"}, got.query["pet_id"])
	assert.Equal(t, []string{"in.(vaccine,exam)"}, got.query["type"])
	assert.Equal(t, []string{"date.desc,created_at.asc,id.asc"}, got.query["order"])
}

func TestRecords_Create_SendsDetailsAsJSON(t *testing.T) {
	c, got := fakeServer(t, http.StatusCreated, ``)

	err := c.Records().Create(context.Background(), medicalrecords.Record{
		ID:      "r1",
		PetID:   "pet-1",
		Type:    medicalrecords.TypeAllergy,
		Date:    civil.MustParse("2025-10-04"),
		Details: medicalrecords.Allergy{Name: "Pollen", Vet: "Dr. Ortiz"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "return=minimal", got.header.Get("Prefer"))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.body), &body))
	assert.Equal(t, "allergy", body["type"])
	assert.Equal(t, "2025-10-04", body["date"])
	assert.Equal(t, map[string]any{"name": "Pollen", "vet": "Dr. Ortiz"}, body["details"])
}

func TestDiary_Update_NoRowsIsNotFound(t *testing.T) {
	c, got := fakeServer(t, http.StatusOK, `[]`)

	title := "Nuevo"
	_, err := c.Diary().Update(context.Background(), "missing", diaryPatchTitle(title))
	assert.ErrorIs(t, err, recordstore.ErrNotFound)

	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, []string{"eq.missing"}, got.query["id"])
	assert.Equal(t, "return=representation", got.header.Get("Prefer"))
	assert.JSONEq(t, `{"title":"Nuevo"}`, got.body)
}

func TestAppointments_Delete(t *testing.T) {
	c, _ := fakeServer(t, http.StatusOK, `[{"id":"a1"}]`)
	require.NoError(t, c.Appointments().Delete(context.Background(), "a1"))

	c, got := fakeServer(t, http.StatusOK, `[]`)
	assert.ErrorIs(t, c.Appointments().Delete(context.Background(), "a1"), recordstore.ErrNotFound)
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/rest/v1/appointments", got.path)
}

func TestErrorStatuses(t *testing.T) {
	c, _ := fakeServer(t, http.StatusUnauthorized, `{"message":"JWT expired"}`)
	_, err := c.Pets().ListByOwner(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	c, _ = fakeServer(t, http.StatusInternalServerError, `{"message":"boom"}`)
	_, err = c.Pets().ListByOwner(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, recordstore.ErrNotFound)
}

func TestVerifier(t *testing.T) {
	c, got := fakeServer(t, http.StatusOK, `{"id":"user-1","email":"ana@example.com","role":"authenticated"}`)

	claims, err := NewVerifier(c).Verify(context.Background(), "user-jwt")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "user-1", Email: "ana@example.com", Role: "authenticated"}, claims)
	assert.Equal(t, "/auth/v1/user", got.path)
	assert.Equal(t, "Bearer user-jwt", got.header.Get("Authorization"))

	_, err = NewVerifier(c).Verify(context.Background(), " ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	c, _ = fakeServer(t, http.StatusUnauthorized, `{"msg":"invalid JWT"}`)
	_, err = NewVerifier(c).Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestQuery_InQuotesReservedChars(t *testing.T) {
	q := from("t").in("name", []string{"a", "b,c"})
	assert.Equal(t, []string{`in.(a,"b,c")`}, q.values()["name"])
}

func diaryPatchTitle(title string) diary.Patch {
	return diary.Patch{Title: &title}
}
