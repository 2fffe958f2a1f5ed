package cartstore

import (
	"errors"
	"testing"

	"github.com/rodrigo-toledo-alt/proxydeck-api/localcart"
	"github.com/shopspring/decimal"
)

type fakeAdder struct {
	failFor map[uint]error
	added   []struct {
		deckID uint
		qty    int
	}
}

func (f *fakeAdder) AddToCart(userID string, deckID uint, qty int) error {
	if err, ok := f.failFor[deckID]; ok {
		return err
	}
	f.added = append(f.added, struct {
		deckID uint
		qty    int
	}{deckID, qty})
	return nil
}

func seedLocalCart(t *testing.T) *localcart.Store {
	t.Helper()
	store := localcart.NewStore(localcart.NewMemoryKV(), localcart.Key("g1"))
	if err := store.Add(1, "A", decimal.RequireFromString("10.00"), "", 2); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(2, "B", decimal.RequireFromString("5.50"), "", 1); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestMergeTransfersAllItemsInOrder(t *testing.T) {
	local := seedLocalCart(t)
	remote := &fakeAdder{}

	results := MergeLocalCart(local, remote, "user-1")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if len(remote.added) != 2 {
		t.Fatalf("expected 2 remote adds, got %d", len(remote.added))
	}
	if remote.added[0].deckID != 1 || remote.added[0].qty != 2 {
		t.Fatalf("first transfer wrong: %+v", remote.added[0])
	}
	if remote.added[1].deckID != 2 || remote.added[1].qty != 1 {
		t.Fatalf("second transfer wrong: %+v", remote.added[1])
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("unexpected failure for deck %d: %v", r.DeckID, r.Err)
		}
	}
}

func TestMergeClearsLocalCartUnconditionally(t *testing.T) {
	local := seedLocalCart(t)
	remote := &fakeAdder{failFor: map[uint]error{
		1: errors.New("backend down"),
		2: errors.New("backend down"),
	}}

	MergeLocalCart(local, remote, "user-1")

	if got := len(local.Load()); got != 0 {
		t.Fatalf("local cart must be cleared even when every add failed, got %d items", got)
	}
}

func TestMergeIsBestEffort(t *testing.T) {
	local := seedLocalCart(t)
	remote := &fakeAdder{failFor: map[uint]error{1: errors.New("deck gone")}}

	results := MergeLocalCart(local, remote, "user-1")

	if len(results) != 2 {
		t.Fatalf("a failed item must not abort the loop, got %d results", len(results))
	}
	if results[0].Err == nil {
		t.Fatal("expected the first item to report its failure")
	}
	if results[1].Err != nil {
		t.Fatalf("second item should have landed, got %v", results[1].Err)
	}
	if len(remote.added) != 1 || remote.added[0].deckID != 2 {
		t.Fatalf("expected only deck 2 on the remote side, got %+v", remote.added)
	}
}

func TestMergeEmptyLocalCartDoesNothing(t *testing.T) {
	local := localcart.NewStore(localcart.NewMemoryKV(), localcart.Key("g1"))
	remote := &fakeAdder{}

	results := MergeLocalCart(local, remote, "user-1")

	if results != nil {
		t.Fatalf("expected nil results for an empty local cart, got %v", results)
	}
	if len(remote.added) != 0 {
		t.Fatalf("no adds expected, got %d", len(remote.added))
	}
}

// End-to-end against the real Store: anonymous lines land in the remote cart
// and accumulate onto rows the user already had.
func TestMergeIntoRealStore(t *testing.T) {
	db := testDB(t)
	remote := New(db)
	a := seedDeck(t, db, "A", "10.00")
	b := seedDeck(t, db, "B", "5.50")

	// The user already has one copy of A in their remote cart
	if err := remote.AddToCart("user-1", a.ID, 1); err != nil {
		t.Fatal(err)
	}

	local := localcart.NewStore(localcart.NewMemoryKV(), localcart.Key("g1"))
	local.Add(a.ID, "A", decimal.RequireFromString("10.00"), "", 2)
	local.Add(b.ID, "B", decimal.RequireFromString("5.50"), "", 1)

	results := MergeLocalCart(local, remote, "user-1")
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("merge failed for deck %d: %v", r.DeckID, r.Err)
		}
	}

	items, err := remote.GetCart("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 remote rows, got %d", len(items))
	}
	if items[0].DeckID != a.ID || items[0].Quantity != 3 {
		t.Fatalf("expected deck A with quantity 3, got deck %d qty %d", items[0].DeckID, items[0].Quantity)
	}
	if items[1].DeckID != b.ID || items[1].Quantity != 1 {
		t.Fatalf("expected deck B with quantity 1, got deck %d qty %d", items[1].DeckID, items[1].Quantity)
	}
	if got := len(local.Load()); got != 0 {
		t.Fatalf("local cart must be empty after merge, got %d items", got)
	}
}
