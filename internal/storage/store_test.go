package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestEncodeDecode(t *testing.T) {
	doc, err := Encode(sample{Name: "crane", Count: 3})
	require.NoError(t, err)
	assert.Equal(t, "crane", doc["name"])

	var out sample
	require.NoError(t, Record{ID: "r1", Doc: doc}.Decode(&out))
	assert.Equal(t, sample{Name: "crane", Count: 3}, out)
}

func TestStamped(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 8, time.UTC)
	orig := Document{"name": "crane"}
	doc := Stamped(orig, at)

	assert.NotContains(t, orig, FieldWrittenAt)
	got, ok := Record{Doc: doc}.WrittenAt()
	require.True(t, ok)
	assert.True(t, at.Equal(got))
}

func TestWrittenAtMissing(t *testing.T) {
	_, ok := Record{Doc: Document{}}.WrittenAt()
	assert.False(t, ok)
	_, ok = Record{Doc: Document{FieldWrittenAt: "yesterday"}}.WrittenAt()
	assert.False(t, ok)
}

func TestValidateField(t *testing.T) {
	assert.NoError(t, ValidateField("policyId"))
	assert.NoError(t, ValidateField("_writtenAt"))
	assert.Error(t, ValidateField(""))
	assert.Error(t, ValidateField("a.b"))
	assert.Error(t, ValidateField("x' OR 1=1"))
}
