package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDecodeCursorEmptyResultYieldsEmptySlice(t *testing.T) {
	cursor, err := mongo.NewCursorFromDocuments([]interface{}{}, nil, nil)
	require.NoError(t, err)

	var out []bson.M
	require.NoError(t, decodeCursor(context.Background(), cursor, &out))

	require.NotNil(t, out)
	assert.Empty(t, out)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestDecodeCursorDrainsDocuments(t *testing.T) {
	cursor, err := mongo.NewCursorFromDocuments([]interface{}{
		bson.M{"symptomId": "s1"},
		bson.M{"symptomId": "s2"},
	}, nil, nil)
	require.NoError(t, err)

	var out []bson.M
	require.NoError(t, decodeCursor(context.Background(), cursor, &out))
	assert.Len(t, out, 2)
}
