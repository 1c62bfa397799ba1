package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Hilltop Station":  "hilltop-station",
		"Café Équipe":      "cafe-equipe",
		"  spaced  out  ":  "spaced-out",
		"Already-Slugged":  "already-slugged",
		"Symbols & stuff!": "symbols-stuff",
	}
	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault("", 5))
	assert.Equal(t, 5, ParseIntDefault("abc", 5))
	assert.Equal(t, 42, ParseIntDefault("42", 5))
	assert.Equal(t, -1, ParseIntDefault("-1", 5))
}

func TestStringsToObjectIDs(t *testing.T) {
	a := bson.NewObjectID()
	b := bson.NewObjectID()

	ids, err := StringsToObjectIDs([]string{a.Hex(), b.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{a, b}, ids)

	_, err = StringsToObjectIDs([]string{a.Hex(), "not-an-id"})
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret-pass"))
	assert.Error(t, CheckPassword(hash, "wrong-pass"))
}
