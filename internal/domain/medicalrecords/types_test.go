package medicalrecords

import (
	"encoding/json"
	"testing"

	"pet-care/internal/platform/civil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetails_AllVariants(t *testing.T) {
	cases := []struct {
		typ  RecordType
		raw  string
		want Details
	}{
		{TypeAllergy, `{"name":"Pollen","vet":"Dr. Ortiz"}`, Allergy{Name: "Pollen", Vet: "Dr. Ortiz"}},
		{TypeSurgery, `{"name":"Castración","clinic":"VetSur","notes":"sin complicaciones"}`, Surgery{Name: "Castración", Clinic: "VetSur", Notes: "sin complicaciones"}},
		{TypeExam, `{"name":"Hemograma","results":"ok","attachmentUri":"file:///docs/hemo.pdf"}`, Exam{Name: "Hemograma", Results: "ok", AttachmentURI: "file:///docs/hemo.pdf"}},
		{TypeMedicine, `{"name":"Amoxicilina","dose":"5ml","duration":"7 días"}`, Medicine{Name: "Amoxicilina", Dose: "5ml", Duration: "7 días"}},
		{TypeParasiteTreatment, `{"name":"Bravecto","lastDoseDate":"2025-07-01","nextDoseDate":"2025-10-01"}`, ParasiteTreatment{Name: "Bravecto", LastDoseDate: civil.MustParse("2025-07-01"), NextDoseDate: civil.MustParse("2025-10-01")}},
		{TypeVaccine, `{"name":"Rabies","nextDoseDate":"2026-01-01","lot":"A12"}`, Vaccine{Name: "Rabies", NextDoseDate: civil.MustParse("2026-01-01"), Lot: "A12"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			got, err := ParseDetails(tc.typ, []byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.typ, got.RecordType())
			assert.NoError(t, ValidateRecord(tc.typ, got))
		})
	}
}

func TestParseDetails_RequiredFields(t *testing.T) {
	cases := []struct {
		typ RecordType
		raw string
	}{
		{TypeAllergy, `{"vet":"Dr. Ortiz"}`},
		{TypeSurgery, `{"name":"  "}`},
		{TypeExam, `{}`},
		{TypeMedicine, `{"name":"Amoxicilina","dose":"5ml"}`},
		{TypeParasiteTreatment, `{"name":"Bravecto","lastDoseDate":"2025-07-01"}`},
		{TypeVaccine, `{"name":"Rabies"}`},
		{TypeVaccine, `null`},
	}

	for _, tc := range cases {
		_, err := ParseDetails(tc.typ, []byte(tc.raw))
		assert.ErrorIs(t, err, ErrInvalidInput, "%s %s", tc.typ, tc.raw)
	}
}

func TestParseDetails_RejectsFieldsFromOtherVariants(t *testing.T) {
	// lot es de vaccine, no de allergy
	_, err := ParseDetails(TypeAllergy, []byte(`{"name":"Pollen","lot":"A12"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseDetails(TypeVaccine, []byte(`{"name":"Rabies","nextDoseDate":"2026-01-01","dose":"1ml"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseDetails_UnknownType(t *testing.T) {
	_, err := ParseDetails("grooming", []byte(`{"name":"Baño"}`))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = DecodeDetails("", nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestParseDetails_BadDate(t *testing.T) {
	_, err := ParseDetails(TypeVaccine, []byte(`{"name":"Rabies","nextDoseDate":"01/01/2026"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeDetails_IsLenient(t *testing.T) {
	d, err := DecodeDetails(TypeAllergy, []byte(`{"name":"Pollen","legacy":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, Allergy{Name: "Pollen"}, d)

	// filas viejas pueden tener details incompletos; leerlas no falla
	d, err = DecodeDetails(TypeVaccine, []byte(`{"name":"Rabies"}`))
	require.NoError(t, err)
	assert.True(t, d.(Vaccine).NextDoseDate.IsZero())
}

func TestValidateRecord_MismatchedVariant(t *testing.T) {
	err := ValidateRecord(TypeVaccine, Allergy{Name: "Pollen"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = ValidateRecord(TypeVaccine, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDetails_OptionalFieldsAreOmitted(t *testing.T) {
	b, err := json.Marshal(Allergy{Name: "Pollen", Vet: "Dr. Ortiz"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "Pollen", m["name"])
	assert.NotContains(t, m, "clinic")
}

func TestTypes_AreAllRegistered(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.Valid(), typ)
	}
	assert.Len(t, Types(), len(registry))
	assert.False(t, RecordType("grooming").Valid())
}
