package civil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	d, err := Parse("2025-10-04")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.October, Day: 4}, d)
	assert.Equal(t, "2025-10-04", d.String())
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := Parse("04/10/2025")
	require.Error(t, err)
}

func TestDate_Compare(t *testing.T) {
	a := MustParse("2025-01-31")
	b := MustParse("2025-02-01")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(MustParse("2025-01-31")))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Next Date `json:"next"`
	}

	b, err := json.Marshal(payload{Next: MustParse("2026-01-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"next":"2026-01-01"}`, string(b))

	b, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"next":null}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"next":""}`), &p))
	assert.True(t, p.Next.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"next":"2025-10-04T15:30:00Z"}`), &p))
	assert.Equal(t, "2025-10-04", p.Next.String())

	require.Error(t, json.Unmarshal([]byte(`{"next":"tomorrow"}`), &p))
}

func TestDate_ScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-09", d.String())

	require.NoError(t, d.Scan([]byte("2024-12-24")))
	assert.Equal(t, "2024-12-24", d.String())

	require.NoError(t, d.Scan("2024-12-25 00:00:00+00:00"))
	assert.Equal(t, "2024-12-25", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	v, err := MustParse("2025-10-04").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-10-04", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
