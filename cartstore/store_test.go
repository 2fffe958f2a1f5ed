package cartstore

import (
	"errors"
	"testing"

	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Deck{},
		&models.Card{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func seedDeck(t *testing.T, db *gorm.DB, name, price string) models.Deck {
	t.Helper()
	deck := models.Deck{Name: name, Price: decimal.RequireFromString(price)}
	if err := db.Create(&deck).Error; err != nil {
		t.Fatalf("seeding deck: %v", err)
	}
	return deck
}

func TestGetOrCreateCartIDIsIdempotent(t *testing.T) {
	db := testDB(t)
	store := New(db)

	first, err := store.GetOrCreateCartID("user-1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.GetOrCreateCartID("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected the same cart id, got %d then %d", first, second)
	}

	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", "user-1").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one cart row, got %d", count)
	}
}

func TestGetOrCreateCartIDRequiresSession(t *testing.T) {
	store := New(testDB(t))

	if _, err := store.GetOrCreateCartID(""); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAddToCartIncrementsExistingRow(t *testing.T) {
	db := testDB(t)
	store := New(db)
	deck := seedDeck(t, db, "Burn Deck", "10.00")

	if err := store.AddToCart("user-1", deck.ID, 1); err != nil {
		t.Fatal(err)
	}
	if err := store.AddToCart("user-1", deck.ID, 2); err != nil {
		t.Fatal(err)
	}

	items, err := store.GetCart("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one row per (cart, deck), got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
}

func TestGetCartJoinsLiveDeckPrice(t *testing.T) {
	db := testDB(t)
	store := New(db)
	deck := seedDeck(t, db, "Burn Deck", "10.00")

	if err := store.AddToCart("user-1", deck.ID, 1); err != nil {
		t.Fatal(err)
	}

	// Catalog price changes after the deck went into the cart
	if err := db.Model(&models.Deck{}).Where("id = ?", deck.ID).
		Update("price", decimal.RequireFromString("12.50")).Error; err != nil {
		t.Fatal(err)
	}

	items, err := store.GetCart("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !items[0].Deck.Price.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("cart must show the live catalog price, got %s", items[0].Deck.Price)
	}
}

func TestGetCartEmptyWithoutSessionOrCart(t *testing.T) {
	store := New(testDB(t))

	items, err := store.GetCart("")
	if err != nil || len(items) != 0 {
		t.Fatalf("unauthenticated GetCart must be empty and error-free, got %d items, %v", len(items), err)
	}

	items, err = store.GetCart("user-without-cart")
	if err != nil || len(items) != 0 {
		t.Fatalf("GetCart before first write must be empty and error-free, got %d items, %v", len(items), err)
	}
}

func TestGetCartOrderedByRowID(t *testing.T) {
	db := testDB(t)
	store := New(db)
	a := seedDeck(t, db, "A", "1.00")
	b := seedDeck(t, db, "B", "2.00")

	store.AddToCart("user-1", b.ID, 1)
	store.AddToCart("user-1", a.ID, 1)

	items, err := store.GetCart("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].DeckID != b.ID || items[1].DeckID != a.ID {
		t.Fatalf("expected insertion order [%d, %d], got %+v", b.ID, a.ID, items)
	}
}

func TestUpdateQuantityBelowOneDeletesRow(t *testing.T) {
	db := testDB(t)
	store := New(db)
	deck := seedDeck(t, db, "Burn Deck", "10.00")

	store.AddToCart("user-1", deck.ID, 2)
	items, _ := store.GetCart("user-1")

	if err := store.UpdateQuantity("user-1", items[0].ID, 0); err != nil {
		t.Fatal(err)
	}

	items, _ = store.GetCart("user-1")
	if len(items) != 0 {
		t.Fatalf("quantity 0 must delete the row, cart still has %d items", len(items))
	}
}

func TestUpdateQuantitySets(t *testing.T) {
	db := testDB(t)
	store := New(db)
	deck := seedDeck(t, db, "Burn Deck", "10.00")

	store.AddToCart("user-1", deck.ID, 2)
	items, _ := store.GetCart("user-1")

	if err := store.UpdateQuantity("user-1", items[0].ID, 7); err != nil {
		t.Fatal(err)
	}

	items, _ = store.GetCart("user-1")
	if items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", items[0].Quantity)
	}
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	db := testDB(t)
	store := New(db)
	deck := seedDeck(t, db, "Burn Deck", "10.00")

	store.AddToCart("user-1", deck.ID, 2)
	items, _ := store.GetCart("user-1")

	// Another user cannot touch user-1's row
	if err := store.UpdateQuantity("user-2", items[0].ID, 9); err != nil {
		t.Fatal(err)
	}
	items, _ = store.GetCart("user-1")
	if items[0].Quantity != 2 {
		t.Fatalf("foreign session changed the row, quantity is %d", items[0].Quantity)
	}
}

func TestRemoveItemAbsentIsSuccess(t *testing.T) {
	store := New(testDB(t))

	if _, err := store.GetOrCreateCartID("user-1"); err != nil {
		t.Fatal(err)
	}
	if err := store.RemoveItem("user-1", 12345); err != nil {
		t.Fatalf("removing an absent row must succeed, got %v", err)
	}
}

func TestClearCart(t *testing.T) {
	db := testDB(t)
	store := New(db)
	a := seedDeck(t, db, "A", "1.00")
	b := seedDeck(t, db, "B", "2.00")

	store.AddToCart("user-1", a.ID, 1)
	store.AddToCart("user-1", b.ID, 1)

	if err := store.ClearCart("user-1"); err != nil {
		t.Fatal(err)
	}
	items, _ := store.GetCart("user-1")
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}

	// No session / no cart: both are no-op successes
	if err := store.ClearCart(""); err != nil {
		t.Fatal(err)
	}
	if err := store.ClearCart("user-never-seen"); err != nil {
		t.Fatal(err)
	}
}
