package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/entity"
)

func newTestLeadStore(t *testing.T) (*FileLeadStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileLeadStore(dir, zap.NewNop())
	require.NoError(t, err)
	return store, dir
}

func sampleLead(id, name string) entity.Lead {
	return entity.Lead{
		ID:        id,
		Name:      name,
		Email:     name + "@example.com",
		Phone:     "123",
		Status:    entity.StatusNew,
		Tags:      []string{},
		Source:    entity.SourceLandingPage,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestFileLeadStoreAppendAndAll(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestLeadStore(t)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, store.Append(ctx, sampleLead("1", "ana")))
	require.NoError(t, store.Append(ctx, sampleLead("2", "bob")))

	all, err = store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "2", all[1].ID)
}

func TestFileLeadStoreUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestLeadStore(t)

	lead := sampleLead("1", "ana")
	require.NoError(t, store.Append(ctx, lead))

	status := entity.StatusQualified
	updated, err := store.Update(ctx, "1", entity.LeadPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusQualified, updated.Status)
	assert.Equal(t, lead.Name, updated.Name)
	assert.Equal(t, lead.Email, updated.Email)
	assert.Equal(t, lead.Phone, updated.Phone)
	assert.Equal(t, lead.Source, updated.Source)
	assert.Nil(t, updated.Value)

	// A fresh store over the same directory must see the persisted change.
	reopened, err := NewFileLeadStore(dir, zap.NewNop())
	require.NoError(t, err)
	all, err := reopened.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.StatusQualified, all[0].Status)
	assert.Equal(t, lead.Name, all[0].Name)
}

func TestFileLeadStoreUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestLeadStore(t)

	require.NoError(t, store.Append(ctx, sampleLead("1", "ana")))

	status := entity.StatusLost
	_, err := store.Update(ctx, "missing", entity.LeadPatch{Status: &status})
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.StatusNew, all[0].Status)
}

func TestFileLeadStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestLeadStore(t)

	require.NoError(t, store.Append(ctx, sampleLead("1", "ana")))
	require.NoError(t, store.Append(ctx, sampleLead("2", "bob")))

	require.NoError(t, store.Delete(ctx, "1"))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2", all[0].ID)
}

func TestFileLeadStoreDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestLeadStore(t)

	require.NoError(t, store.Append(ctx, sampleLead("1", "ana")))

	err := store.Delete(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFileLeadStoreCorruptFileDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestLeadStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, leadsFileName), []byte("{not json"), 0o644))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
