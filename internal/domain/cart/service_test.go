package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	carts   map[string]*Cart
	loadErr error
	saveErr error

	saves int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[string]*Cart{}}
}

func (m *memoryStore) Load(_ context.Context, token string) (*Cart, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if c, ok := m.carts[token]; ok {
		copied := *c
		copied.Items = append([]LineItem(nil), c.Items...)
		return &copied, nil
	}
	return NewCart(token), nil
}

func (m *memoryStore) Save(_ context.Context, token string, c *Cart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.carts[token] = c
	return nil
}

func (m *memoryStore) Delete(_ context.Context, token string) error {
	delete(m.carts, token)
	return nil
}

func testService(prices map[string]int64) (*Service, *memoryStore) {
	store := newMemoryStore()
	composer := NewComposer(&stubPrices{prices: prices}, testLogger())
	return NewService(store, composer, testLogger()), store
}

func TestAddItemsRejectsEmptyBatch(t *testing.T) {
	svc, store := testService(map[string]int64{})

	_, err := svc.AddItems(context.Background(), "tok", nil)

	require.ErrorIs(t, err, ErrNoItems)
	assert.Empty(t, store.carts)
}

func TestAddItemsCommitsBundleAsOneEntry(t *testing.T) {
	svc, store := testService(map[string]int64{
		"S1": 500,
		"T1": 100,
		"T2": 150,
	})

	c, err := svc.AddItems(context.Background(), "tok", []AddItemRequest{
		{
			Type:     LineItemTypeProduct,
			ID:       "S1",
			Quantity: 1,
			Children: []ChildItemRequest{{ID: "T1"}, {ID: "T2"}},
		},
	})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Len(t, c.Items[0].Children, 2)
	assert.Equal(t, int64(750), c.Items[0].Price.TotalPrice)
	assert.Equal(t, int64(750), c.Totals.TotalAmount)
	assert.Equal(t, 1, c.Totals.ItemCount)
	assert.Equal(t, 3, c.Totals.TotalQuantity)

	// One store write for the whole batch.
	assert.Equal(t, 1, store.saves)
}

func TestAddItemsRepeatedAddsCreateIndependentEntries(t *testing.T) {
	svc, _ := testService(map[string]int64{"S1": 500})

	req := []AddItemRequest{{Type: LineItemTypeProduct, ID: "S1"}}

	_, err := svc.AddItems(context.Background(), "tok", req)
	require.NoError(t, err)
	c, err := svc.AddItems(context.Background(), "tok", req)
	require.NoError(t, err)

	// No merge-by-fingerprint: two clicks, two entries.
	assert.Len(t, c.Items, 2)
	assert.Equal(t, int64(1000), c.Totals.TotalAmount)
}

func TestAddItemsAbortsWholeBatchOnCompositionFailure(t *testing.T) {
	svc, store := testService(map[string]int64{"S1": 500})

	_, err := svc.AddItems(context.Background(), "tok", []AddItemRequest{
		{Type: LineItemTypeProduct, ID: "S1"},
		{Type: "voucher", ID: "bad"},
	})

	require.ErrorIs(t, err, ErrCartMutation)

	// The first item must not have been persisted.
	assert.Empty(t, store.carts)
	assert.Zero(t, store.saves)
}

func TestAddItemsSaveFailureDoesNotPersist(t *testing.T) {
	svc, store := testService(map[string]int64{"S1": 500})
	store.saveErr = errors.New("redis down")

	_, err := svc.AddItems(context.Background(), "tok", []AddItemRequest{
		{Type: LineItemTypeProduct, ID: "S1"},
	})

	require.ErrorIs(t, err, ErrCartMutation)
	assert.Empty(t, store.carts)
}

func TestGetCartReturnsEmptyCartForNewToken(t *testing.T) {
	svc, _ := testService(map[string]int64{})

	c, err := svc.GetCart(context.Background(), "fresh")
	require.NoError(t, err)

	assert.Equal(t, "fresh", c.Token)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Totals.TotalAmount)
}

func TestClearCartRemovesStoredCart(t *testing.T) {
	svc, store := testService(map[string]int64{"S1": 500})

	_, err := svc.AddItems(context.Background(), "tok", []AddItemRequest{
		{Type: LineItemTypeProduct, ID: "S1"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, store.carts)

	require.NoError(t, svc.ClearCart(context.Background(), "tok"))
	assert.Empty(t, store.carts)
}

func TestAddedTotalMatchesPreSubmitQuote(t *testing.T) {
	// End to end against the pricing semantics: size 5.00, toppings
	// 1.00 and 1.50, drink 2.50 as a separate top-level item.
	svc, _ := testService(map[string]int64{
		"S1": 500,
		"T1": 100,
		"T2": 150,
		"D1": 250,
	})

	c, err := svc.AddItems(context.Background(), "tok", []AddItemRequest{
		{
			Type:     LineItemTypeProduct,
			ID:       "S1",
			Children: []ChildItemRequest{{ID: "T1"}, {ID: "T2"}},
		},
		{Type: LineItemTypeProduct, ID: "D1"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), c.Totals.TotalAmount)
}
