package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func seedParent(t *testing.T, mem *Memory, doc bson.M) {
	t.Helper()
	require.NoError(t, mem.Insert(context.Background(), "patients", doc))
}

func TestAppendThenListIncludesEntry(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")
	ctx := context.Background()

	seedParent(t, mem, bson.M{"_id": "P1", "name": "Pat One"})

	id, err := nested.Append(ctx, "P1", "prescriptions", bson.M{"medication": "Ibuprofen"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entries, err := nested.List(ctx, "P1", "prescriptions")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0]["id"])
	assert.Equal(t, "Ibuprofen", entries[0]["medication"])
}

func TestRepeatedAppendsYieldDistinctIDs(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")
	ctx := context.Background()

	seedParent(t, mem, bson.M{"_id": "P1"})

	const n = 5
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		id, err := nested.Append(ctx, "P1", "prescriptions", bson.M{"medication": "Ibuprofen"})
		require.NoError(t, err)
		assert.False(t, seen[id], "entry id %q issued twice", id)
		seen[id] = true
	}

	entries, err := nested.List(ctx, "P1", "prescriptions")
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

func TestAppendLeavesSiblingsUntouched(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")
	ctx := context.Background()

	seedParent(t, mem, bson.M{"_id": "P1", "name": "Pat One", "assigned_doctor": "D1"})

	_, err := nested.Append(ctx, "P1", "healthStatus", bson.M{"status": "Stable"})
	require.NoError(t, err)
	_, err = nested.Append(ctx, "P1", "healthStatus", bson.M{"status": "Improving"})
	require.NoError(t, err)

	doc, err := mem.Get(ctx, "patients", "P1")
	require.NoError(t, err)
	assert.Equal(t, "Pat One", doc["name"])
	assert.Equal(t, "D1", doc["assigned_doctor"])

	entries, err := nested.List(ctx, "P1", "healthStatus")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Appending to one mapping must not create or clobber another.
	_, err = nested.List(ctx, "P1", "prescriptions")
	assert.ErrorIs(t, err, ErrEmptyCollection)
}

func TestAppendStampsIDIntoEntry(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")
	ctx := context.Background()

	seedParent(t, mem, bson.M{"_id": "P1"})

	entry := bson.M{"status": "Stable"}
	id, err := nested.Append(ctx, "P1", "healthStatus", entry)
	require.NoError(t, err)

	// The caller's value carries the same id the stored entry lists under.
	assert.Equal(t, id, entry["id"])

	entries, err := nested.List(ctx, "P1", "healthStatus")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0]["id"])
}

func TestAppendToMissingParentFails(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")

	_, err := nested.Append(context.Background(), "ghost", "prescriptions", bson.M{"medication": "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesExactlyOneEntry(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")
	ctx := context.Background()

	seedParent(t, mem, bson.M{"_id": "P1", "name": "Pat One"})

	keep, err := nested.Append(ctx, "P1", "healthStatus", bson.M{"status": "Stable"})
	require.NoError(t, err)
	drop, err := nested.Append(ctx, "P1", "healthStatus", bson.M{"status": "Critical"})
	require.NoError(t, err)

	require.NoError(t, nested.Delete(ctx, "P1", "healthStatus", drop))

	entries, err := nested.List(ctx, "P1", "healthStatus")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep, entries[0]["id"])

	doc, err := mem.Get(ctx, "patients", "P1")
	require.NoError(t, err)
	assert.Equal(t, "Pat One", doc["name"])
}

func TestDeleteMissingEntryFailsAndLeavesCollection(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")
	ctx := context.Background()

	seedParent(t, mem, bson.M{"_id": "P1"})

	id, err := nested.Append(ctx, "P1", "healthStatus", bson.M{"status": "Stable"})
	require.NoError(t, err)

	err = nested.Delete(ctx, "P1", "healthStatus", "no-such-entry")
	assert.ErrorIs(t, err, ErrNotFound)

	err = nested.Delete(ctx, "ghost", "healthStatus", id)
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := nested.List(ctx, "P1", "healthStatus")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0]["id"])
}

func TestListMissingParentFails(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")

	_, err := nested.List(context.Background(), "ghost", "prescriptions")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDistinguishesAbsentFieldFromEmptyMapping(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")
	ctx := context.Background()

	seedParent(t, mem, bson.M{"_id": "absent"})
	seedParent(t, mem, bson.M{"_id": "empty", "prescriptions": bson.M{}})

	_, err := nested.List(ctx, "absent", "prescriptions")
	assert.ErrorIs(t, err, ErrEmptyCollection)

	entries, err := nested.List(ctx, "empty", "prescriptions")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListAfterDeletingLastEntryIsEmptyNotAbsent(t *testing.T) {
	mem := NewMemory()
	nested := NewNested(mem, "patients")
	ctx := context.Background()

	seedParent(t, mem, bson.M{"_id": "P1"})

	id, err := nested.Append(ctx, "P1", "healthStatus", bson.M{"status": "Stable"})
	require.NoError(t, err)
	require.NoError(t, nested.Delete(ctx, "P1", "healthStatus", id))

	entries, err := nested.List(ctx, "P1", "healthStatus")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
