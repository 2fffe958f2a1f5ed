package checkout

import (
	"errors"
	"testing"

	"github.com/rodrigo-toledo-alt/proxydeck-api/cartstore"
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

func newService(db *gorm.DB) (*Service, *cartstore.Store) {
	carts := cartstore.New(db)
	return NewService(db, carts), carts
}

func TestCheckoutTotalAndSnapshots(t *testing.T) {
	db := testDB(t)
	svc, carts := newService(db)
	a := seedDeck(t, db, "Burn Deck", "10.00")
	b := seedDeck(t, db, "Control Deck", "5.50")

	carts.AddToCart("user-1", a.ID, 2)
	carts.AddToCart("user-1", b.ID, 1)

	receipt, err := svc.Checkout("user-1")
	if err != nil {
		t.Fatal(err)
	}

	want := decimal.RequireFromString("25.50")
	if !receipt.Total.Equal(want) {
		t.Fatalf("expected total 25.50, got %s", receipt.Total)
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, receipt.OrderID).Error; err != nil {
		t.Fatal(err)
	}
	if !order.TotalAmount.Equal(want) {
		t.Fatalf("expected persisted total 25.50, got %s", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	byDeck := map[uint]models.OrderItem{}
	for _, it := range order.Items {
		byDeck[it.DeckID] = it
	}
	if !byDeck[a.ID].Price.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected frozen price 10.00 for deck A, got %s", byDeck[a.ID].Price)
	}
	if !byDeck[b.ID].Price.Equal(decimal.RequireFromString("5.50")) {
		t.Fatalf("expected frozen price 5.50 for deck B, got %s", byDeck[b.ID].Price)
	}

	// Cart is empty once the order is fully persisted
	items, _ := carts.GetCart("user-1")
	if len(items) != 0 {
		t.Fatalf("expected cleared cart, got %d items", len(items))
	}
}

func TestCheckoutSnapshotSurvivesCatalogEdit(t *testing.T) {
	db := testDB(t)
	svc, carts := newService(db)
	deck := seedDeck(t, db, "Burn Deck", "10.00")

	carts.AddToCart("user-1", deck.ID, 1)
	receipt, err := svc.Checkout("user-1")
	if err != nil {
		t.Fatal(err)
	}

	// Catalog price changes after checkout
	if err := db.Model(&models.Deck{}).Where("id = ?", deck.ID).
		Update("price", decimal.RequireFromString("99.99")).Error; err != nil {
		t.Fatal(err)
	}

	var item models.OrderItem
	if err := db.Where("order_id = ?", receipt.OrderID).First(&item).Error; err != nil {
		t.Fatal(err)
	}
	if !item.Price.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("order item price must stay frozen at 10.00, got %s", item.Price)
	}
}

func TestCheckoutEmptyCartFailsClosed(t *testing.T) {
	db := testDB(t)
	svc, _ := newService(db)

	_, err := svc.Checkout("user-1")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Fatalf("empty-cart checkout must write nothing, got %d orders, %d items", orders, items)
	}
}

func TestCheckoutRequiresSession(t *testing.T) {
	svc, _ := newService(testDB(t))

	if _, err := svc.Checkout(""); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestCheckoutMissingDeckPriceCountsAsZero(t *testing.T) {
	db := testDB(t)
	svc, carts := newService(db)
	a := seedDeck(t, db, "Burn Deck", "10.00")
	b := seedDeck(t, db, "Gone Deck", "42.00")

	carts.AddToCart("user-1", a.ID, 1)
	carts.AddToCart("user-1", b.ID, 1)

	// Deck b vanishes from the catalog before checkout
	if err := db.Delete(&models.Deck{}, b.ID).Error; err != nil {
		t.Fatal(err)
	}

	receipt, err := svc.Checkout("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !receipt.Total.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("missing deck must contribute zero, got total %s", receipt.Total)
	}
}

func TestCartClearsOnlyAfterItemsPersist(t *testing.T) {
	db := testDB(t)
	svc, carts := newService(db)
	deck := seedDeck(t, db, "Burn Deck", "10.00")

	carts.AddToCart("user-1", deck.ID, 2)

	// Force the item insert to fail after the header insert succeeds
	if err := db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Checkout("user-1"); err == nil {
		t.Fatal("expected checkout to fail when order items cannot be persisted")
	}

	// The cart must be untouched
	items, err := carts.GetCart("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("cart must keep its items after a failed checkout, got %+v", items)
	}

	// The orphan header is left behind, pending, and detectable
	var orphans []models.Order
	if err := db.Where("status = ?", models.OrderStatusPending).Find(&orphans).Error; err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 1 {
		t.Fatalf("expected one orphan header, got %d", len(orphans))
	}

	// Reconciliation voids it once the grace window has passed
	if err := db.AutoMigrate(&models.OrderItem{}); err != nil {
		t.Fatal(err)
	}
	voided, err := svc.VoidOrphanedOrders(0)
	if err != nil {
		t.Fatal(err)
	}
	if voided != 1 {
		t.Fatalf("expected one voided order, got %d", voided)
	}

	var order models.Order
	if err := db.First(&order, orphans[0].ID).Error; err != nil {
		t.Fatal(err)
	}
	if order.Status != models.OrderStatusCancelled {
		t.Fatalf("expected orphan to be cancelled, got %s", order.Status)
	}
}

func TestVoidOrphanedOrdersSkipsHealthyOrders(t *testing.T) {
	db := testDB(t)
	svc, carts := newService(db)
	deck := seedDeck(t, db, "Burn Deck", "10.00")

	carts.AddToCart("user-1", deck.ID, 1)
	receipt, err := svc.Checkout("user-1")
	if err != nil {
		t.Fatal(err)
	}

	voided, err := svc.VoidOrphanedOrders(0)
	if err != nil {
		t.Fatal(err)
	}
	if voided != 0 {
		t.Fatalf("healthy pending orders must not be voided, got %d", voided)
	}

	var order models.Order
	if err := db.First(&order, receipt.OrderID).Error; err != nil {
		t.Fatal(err)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected order to stay pending, got %s", order.Status)
	}
}
