package wishlist

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/storage"
	"github.com/utafrali/storefront/pkg/logger"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) Notify(_ context.Context, e event.Event) { r.events = append(r.events, e) }

func (r *recorder) actions() []event.Action {
	out := make([]event.Action, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

func product(id string) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(15)}
}

func ids(items []domain.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func newTestStore(t *testing.T) (*Store, *storage.Memory, *recorder) {
	t.Helper()
	kv := storage.NewMemory()
	rec := &recorder{}
	return NewStore(context.Background(), kv, rec, logger.Discard()), kv, rec
}

func TestAdd_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, _, rec := newTestStore(t)

	s.Add(ctx, product("1"))
	s.Add(ctx, product("1"))

	assert.Equal(t, 1, s.Count())
	assert.True(t, s.Contains("1"))
	assert.Equal(t, []event.Action{event.ActionAdded}, rec.actions())
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	s.Add(ctx, product("c"))
	s.Add(ctx, product("a"))
	s.Add(ctx, product("b"))

	assert.Equal(t, []string{"c", "a", "b"}, ids(s.Items()))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s, _, rec := newTestStore(t)
	s.Add(ctx, product("1"))
	s.Add(ctx, product("2"))

	s.Remove(ctx, "1")
	s.Remove(ctx, "1")

	assert.Equal(t, []string{"2"}, ids(s.Items()))
	assert.False(t, s.Contains("1"))
	assert.Equal(t, []event.Action{event.ActionAdded, event.ActionAdded, event.ActionRemoved}, rec.actions())
	assert.Equal(t, "1", rec.events[2].ProductID)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	s, _, rec := newTestStore(t)

	assert.True(t, s.Toggle(ctx, product("1")))
	assert.True(t, s.Contains("1"))

	assert.False(t, s.Toggle(ctx, product("1")))
	assert.False(t, s.Contains("1"))

	assert.Equal(t, []event.Action{event.ActionAdded, event.ActionRemoved}, rec.actions())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, kv, rec := newTestStore(t)
	s.Add(ctx, product("1"))
	s.Add(ctx, product("2"))

	s.Clear(ctx)

	assert.Zero(t, s.Count())
	assert.Empty(t, s.Items())
	assert.Equal(t, event.ActionCleared, rec.events[len(rec.events)-1].Action)

	raw, err := kv.Get(ctx, storage.KeyWishlist)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestPersistReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := NewStore(ctx, kv, nil, logger.Discard())
	s.Add(ctx, product("1"))
	s.Add(ctx, product("2"))
	s.Remove(ctx, "1")
	s.Add(ctx, product("3"))

	reloaded := NewStore(ctx, kv, nil, logger.Discard())

	assert.Equal(t, []string{"2", "3"}, ids(reloaded.Items()))
	assert.True(t, reloaded.Contains("3"))
	assert.Equal(t, 2, reloaded.Count())
}

func TestAdd_RejectsEmptyID(t *testing.T) {
	ctx := context.Background()
	s, kv, rec := newTestStore(t)

	s.Add(ctx, product("1"))
	s.Add(ctx, domain.Product{Name: "No id"})
	assert.False(t, s.Toggle(ctx, domain.Product{Name: "No id"}))

	assert.Equal(t, []string{"1"}, ids(s.Items()))
	assert.Equal(t, []event.Action{event.ActionAdded}, rec.actions())

	reloaded := NewStore(ctx, kv, nil, logger.Discard())
	assert.Equal(t, ids(s.Items()), ids(reloaded.Items()))
}

func TestLoad_Deduplicates(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	blob := `[{"id":"1","name":"A","price":"1"},{"id":"1","name":"A","price":"1"},{"id":"","name":"X","price":"1"},{"id":"2","name":"B","price":"2"}]`
	require.NoError(t, kv.Set(ctx, storage.KeyWishlist, []byte(blob)))

	s := NewStore(ctx, kv, nil, logger.Discard())

	assert.Equal(t, []string{"1", "2"}, ids(s.Items()))
}

func TestLoad_CorruptBlobYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyWishlist, []byte(`not json`)))

	var buf bytes.Buffer
	s := NewStore(ctx, kv, nil, logger.NewWithWriter("storefront", "info", &buf))

	assert.Zero(t, s.Count())
	assert.Contains(t, buf.String(), "discarding corrupt persisted wishlist")

	s.Add(ctx, product("9"))
	assert.Equal(t, 1, s.Count())
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.Add(ctx, product("1"))

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, []string{"1"}, ids(snap.Items))

	snap.Items[0].ID = "changed"
	assert.True(t, s.Contains("1"))
}
