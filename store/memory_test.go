package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMemoryUpdateOneAppliesSet(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Insert(ctx, "symptoms", bson.M{"symptomId": "s1", "symptomDescription": "fever"}))

	matched, err := mem.UpdateOne(ctx, "symptoms",
		bson.M{"symptomId": "s1"},
		bson.M{"$set": bson.M{"symptomDescription": "high fever"}},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	var doc bson.M
	require.NoError(t, mem.FindOne(ctx, "symptoms", bson.M{"symptomId": "s1"}, &doc))
	assert.Equal(t, "high fever", doc["symptomDescription"])
}

func TestMemoryUpdateOneRejectsUnsupportedOperator(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Insert(ctx, "symptoms", bson.M{"symptomId": "s1", "count": 1}))

	_, err := mem.UpdateOne(ctx, "symptoms",
		bson.M{"symptomId": "s1"},
		bson.M{"$inc": bson.M{"count": 1}},
	)
	assert.Error(t, err)

	_, err = mem.UpdateOne(ctx, "symptoms",
		bson.M{"symptomId": "s1"},
		bson.M{"$unset": bson.M{"count": ""}},
	)
	assert.Error(t, err)
}
