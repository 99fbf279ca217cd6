package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/motorstore/internal/models"
	"github.com/motorstore/internal/queue"
	"github.com/motorstore/internal/repository"
	"github.com/motorstore/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// recordingKV 记录写入次数，用于断言"无变更不落盘"
type recordingKV struct {
	store.KV
	setCalls int
}

func (r *recordingKV) Set(ctx context.Context, key, value string) error {
	r.setCalls++
	return r.KV.Set(ctx, key, value)
}

// flakyKV 可开关写失败，用于验证降级行为
type flakyKV struct {
	store.KV
	failSet bool
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("kv write unavailable")
	}
	return f.KV.Set(ctx, key, value)
}

func newCartServiceTest(t *testing.T, kv store.KV) *CartService {
	t.Helper()

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	noticeService := NewNoticeService(repository.NewNoticeRepository(kv), queueClient, 0)
	t.Cleanup(noticeService.Close)
	return NewCartService(repository.NewCartRepository(kv), nil, noticeService)
}

func newCatalogProductRepo(t *testing.T) (repository.ProductRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return repository.NewProductRepository(db), db
}

func mustGet(t *testing.T, kv store.KV, key string) string {
	t.Helper()

	val, found, err := kv.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("kv get %s failed: %v", key, err)
	}
	if !found {
		t.Fatalf("kv key %s not found", key)
	}
	return val
}

func TestAddItemNewLinePersistsSerializedForm(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)
	price := decimal.NewFromInt(89900)

	snapshot, err := svc.AddItem(context.Background(), AddCartItemInput{
		ProductID: 1,
		Name:      "BMW M3",
		UnitPrice: &price,
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(snapshot.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snapshot.Lines))
	}
	if snapshot.Lines[0].Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", snapshot.Lines[0].Quantity)
	}
	if snapshot.ItemCount != 1 {
		t.Fatalf("item count = %d, want 1", snapshot.ItemCount)
	}
	if !snapshot.Total.Equal(decimal.NewFromInt(89900)) {
		t.Fatalf("total = %s, want 89900", snapshot.Total)
	}

	want := `[{"id":1,"name":"BMW M3","price":89900,"quantity":1}]`
	if got := mustGet(t, kv, "cart"); got != want {
		t.Fatalf("persisted cart = %s, want %s", got, want)
	}
}

func TestAddItemExistingLineIncrementsQuantity(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)
	price := decimal.NewFromInt(89900)

	input := AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}
	if _, err := svc.AddItem(context.Background(), input); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	snapshot, err := svc.AddItem(context.Background(), input)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(snapshot.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snapshot.Lines))
	}
	if snapshot.Lines[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", snapshot.Lines[0].Quantity)
	}
	if !snapshot.Total.Equal(decimal.NewFromInt(179800)) {
		t.Fatalf("total = %s, want 179800", snapshot.Total)
	}

	want := `[{"id":1,"name":"BMW M3","price":89900,"quantity":2}]`
	if got := mustGet(t, kv, "cart"); got != want {
		t.Fatalf("persisted cart = %s, want %s", got, want)
	}
}

func TestAddItemAppendsInInsertionOrder(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)

	for i, name := range []string{"BMW M3", "Audi RS6", "Porsche 911"} {
		price := decimal.NewFromInt(int64(80000 + i))
		if _, err := svc.AddItem(context.Background(), AddCartItemInput{
			ProductID: uint(i + 1),
			Name:      name,
			UnitPrice: &price,
		}); err != nil {
			t.Fatalf("add %s failed: %v", name, err)
		}
	}

	snapshot := svc.Snapshot(context.Background())
	wantOrder := []string{"BMW M3", "Audi RS6", "Porsche 911"}
	if len(snapshot.Lines) != len(wantOrder) {
		t.Fatalf("expected %d lines, got %d", len(wantOrder), len(snapshot.Lines))
	}
	for i, want := range wantOrder {
		if snapshot.Lines[i].Name != want {
			t.Fatalf("line %d = %s, want %s", i, snapshot.Lines[i].Name, want)
		}
	}
}

func TestAddItemAcceptsZeroAndNegativePrice(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)

	zero := decimal.Zero
	if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 1, Name: "Showroom Poster", UnitPrice: &zero}); err != nil {
		t.Fatalf("add zero-price item failed: %v", err)
	}
	negative := decimal.NewFromInt(-500)
	snapshot, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 2, Name: "Trade-in Credit", UnitPrice: &negative})
	if err != nil {
		t.Fatalf("add negative-price item failed: %v", err)
	}

	if !snapshot.Total.Equal(decimal.NewFromInt(-500)) {
		t.Fatalf("total = %s, want -500", snapshot.Total)
	}
}

func TestAddItemFillsNameAndPriceFromCatalog(t *testing.T) {
	kv := store.NewMemoryKV()
	productRepo, db := newCatalogProductRepo(t)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	noticeService := NewNoticeService(repository.NewNoticeRepository(kv), queueClient, 0)
	t.Cleanup(noticeService.Close)
	svc := NewCartService(repository.NewCartRepository(kv), productRepo, noticeService)

	product := &models.Product{
		Slug:        "bmw-m3",
		TitleJSON:   models.JSON{"zh-CN": "宝马 M3", "en-US": "BMW M3 Competition"},
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("89900")),
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	snapshot, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: product.ID, Locale: "en-US"})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if snapshot.Lines[0].Name != "BMW M3 Competition" {
		t.Fatalf("name = %s, want BMW M3 Competition", snapshot.Lines[0].Name)
	}
	if !snapshot.Lines[0].Price.Decimal.Equal(decimal.RequireFromString("89900")) {
		t.Fatalf("price = %s, want 89900", snapshot.Lines[0].Price)
	}
}

func TestAddItemUnknownProductWithoutNameFails(t *testing.T) {
	kv := store.NewMemoryKV()
	productRepo, _ := newCatalogProductRepo(t)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	noticeService := NewNoticeService(repository.NewNoticeRepository(kv), queueClient, 0)
	t.Cleanup(noticeService.Close)
	svc := NewCartService(repository.NewCartRepository(kv), productRepo, noticeService)

	_, err = svc.AddItem(context.Background(), AddCartItemInput{ProductID: 9999})
	if !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)
	price := decimal.NewFromInt(89900)

	if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	snapshot, err := svc.SetQuantity(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if len(snapshot.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(snapshot.Lines))
	}
	if got := mustGet(t, kv, "cart"); got != "[]" {
		t.Fatalf("persisted cart = %s, want []", got)
	}
}

func TestSetQuantityNegativeRemovesLine(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)
	price := decimal.NewFromInt(100)

	if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	snapshot, err := svc.SetQuantity(context.Background(), 1, -3)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if len(snapshot.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(snapshot.Lines))
	}
}

func TestSetQuantityExactValueWithoutUpperBound(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)
	price := decimal.NewFromInt(2)

	if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	snapshot, err := svc.SetQuantity(context.Background(), 1, 100000)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if snapshot.Lines[0].Quantity != 100000 {
		t.Fatalf("quantity = %d, want 100000", snapshot.Lines[0].Quantity)
	}
	if !snapshot.Total.Equal(decimal.NewFromInt(200000)) {
		t.Fatalf("total = %s, want 200000", snapshot.Total)
	}
}

func TestSetQuantityMissingLineIsNoOp(t *testing.T) {
	base := store.NewMemoryKV()
	kv := &recordingKV{KV: base}
	svc := newCartServiceTest(t, kv)
	price := decimal.NewFromInt(89900)

	if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	writesBefore := kv.setCalls

	snapshot, err := svc.SetQuantity(context.Background(), 99, 5)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if len(snapshot.Lines) != 1 || snapshot.Lines[0].Quantity != 1 {
		t.Fatalf("cart changed unexpectedly: %+v", snapshot.Lines)
	}
	if kv.setCalls != writesBefore {
		t.Fatalf("expected no write, got %d extra", kv.setCalls-writesBefore)
	}
}

func TestRemoveItemMissingLineIsSilent(t *testing.T) {
	base := store.NewMemoryKV()
	kv := &recordingKV{KV: base}
	svc := newCartServiceTest(t, kv)

	snapshot, err := svc.RemoveItem(context.Background(), 42)
	if err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if len(snapshot.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(snapshot.Lines))
	}
	if kv.setCalls != 0 {
		t.Fatalf("expected no write, got %d", kv.setCalls)
	}
}

func TestRemoveItemPreservesRemainingOrder(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)

	for i, name := range []string{"BMW M3", "Audi RS6", "Porsche 911"} {
		price := decimal.NewFromInt(1000)
		if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: uint(i + 1), Name: name, UnitPrice: &price}); err != nil {
			t.Fatalf("add %s failed: %v", name, err)
		}
	}

	snapshot, err := svc.RemoveItem(context.Background(), 2)
	if err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if len(snapshot.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(snapshot.Lines))
	}
	if snapshot.Lines[0].Name != "BMW M3" || snapshot.Lines[1].Name != "Porsche 911" {
		t.Fatalf("unexpected order: %s, %s", snapshot.Lines[0].Name, snapshot.Lines[1].Name)
	}
}

func TestClearDeclinedKeepsCartAndStorage(t *testing.T) {
	base := store.NewMemoryKV()
	kv := &recordingKV{KV: base}
	svc := newCartServiceTest(t, kv)
	price := decimal.NewFromInt(89900)

	if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	persisted := mustGet(t, kv, "cart")
	writesBefore := kv.setCalls

	snapshot, err := svc.Clear(context.Background(), false)
	if err != nil {
		t.Fatalf("declined clear failed: %v", err)
	}
	if len(snapshot.Lines) != 1 {
		t.Fatalf("declined clear mutated cart: %d lines", len(snapshot.Lines))
	}
	if kv.setCalls != writesBefore {
		t.Fatalf("declined clear wrote storage %d times", kv.setCalls-writesBefore)
	}
	if got := mustGet(t, kv, "cart"); got != persisted {
		t.Fatalf("persisted cart changed: %s", got)
	}
}

func TestClearConfirmedEmptiesCart(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)
	price := decimal.NewFromInt(89900)

	if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	snapshot, err := svc.Clear(context.Background(), true)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(snapshot.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(snapshot.Lines))
	}
	if got := mustGet(t, kv, "cart"); got != "[]" {
		t.Fatalf("persisted cart = %s, want []", got)
	}
}

func TestLoadMalformedValueStartsEmpty(t *testing.T) {
	kv := store.NewMemoryKV()
	if err := kv.Set(context.Background(), "cart", "{{{definitely not json"); err != nil {
		t.Fatalf("seed kv failed: %v", err)
	}
	svc := newCartServiceTest(t, kv)

	snapshot := svc.Snapshot(context.Background())
	if len(snapshot.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(snapshot.Lines))
	}

	price := decimal.NewFromInt(100)
	if _, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}); err != nil {
		t.Fatalf("add after malformed load failed: %v", err)
	}
	if got := mustGet(t, kv, "cart"); !strings.HasPrefix(got, `[{"id":1`) {
		t.Fatalf("expected legal serialized cart, got %s", got)
	}
}

func TestPreloadRestoresPersistedCart(t *testing.T) {
	kv := store.NewMemoryKV()
	seed := `[{"id":1,"name":"BMW M3","price":89900,"quantity":2},{"id":2,"name":"Audi RS6","price":"119500.50","quantity":1}]`
	if err := kv.Set(context.Background(), "cart", seed); err != nil {
		t.Fatalf("seed kv failed: %v", err)
	}
	svc := newCartServiceTest(t, kv)

	if err := svc.Preload(context.Background()); err != nil {
		t.Fatalf("preload failed: %v", err)
	}
	snapshot := svc.Snapshot(context.Background())
	if len(snapshot.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(snapshot.Lines))
	}
	want := decimal.RequireFromString("299300.50")
	if !snapshot.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", snapshot.Total, want)
	}
}

func TestMutationsKeepStorageMirrored(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)
	ctx := context.Background()
	price := decimal.RequireFromString("100.555")

	if _, err := svc.AddItem(ctx, AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	assertMirror := func(step string) {
		t.Helper()
		reloaded, err := repository.NewCartRepository(kv).Load(ctx)
		if err != nil {
			t.Fatalf("%s: reload failed: %v", step, err)
		}
		snapshot := svc.Snapshot(ctx)
		if len(reloaded) != len(snapshot.Lines) {
			t.Fatalf("%s: persisted %d lines, memory %d", step, len(reloaded), len(snapshot.Lines))
		}
		for i := range reloaded {
			if reloaded[i].ID != snapshot.Lines[i].ID ||
				reloaded[i].Name != snapshot.Lines[i].Name ||
				reloaded[i].Quantity != snapshot.Lines[i].Quantity ||
				!reloaded[i].Price.Decimal.Equal(snapshot.Lines[i].Price.Decimal) {
				t.Fatalf("%s: line %d diverged: %+v vs %+v", step, i, reloaded[i], snapshot.Lines[i])
			}
		}
	}

	assertMirror("after add")
	if _, err := svc.SetQuantity(ctx, 1, 7); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	assertMirror("after set quantity")
	if _, err := svc.RemoveItem(ctx, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	assertMirror("after remove")
	if _, err := svc.Clear(ctx, true); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	assertMirror("after clear")
}

func TestTotalIsExactSum(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newCartServiceTest(t, kv)
	ctx := context.Background()

	first := decimal.RequireFromString("19999.99")
	if _, err := svc.AddItem(ctx, AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &first}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.SetQuantity(ctx, 1, 3); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	second := decimal.RequireFromString("0.105")
	if _, err := svc.AddItem(ctx, AddCartItemInput{ProductID: 2, Name: "Keyring", UnitPrice: &second}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	want := decimal.RequireFromString("60000.075")
	if got := svc.Total(ctx); !got.Equal(want) {
		t.Fatalf("total = %s, want %s", got, want)
	}
}

func TestAddItemPublishesNoticeWithNameAndCount(t *testing.T) {
	kv := store.NewMemoryKV()
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	noticeService := NewNoticeService(repository.NewNoticeRepository(kv), queueClient, 0)
	t.Cleanup(noticeService.Close)
	svc := NewCartService(repository.NewCartRepository(kv), nil, noticeService)
	price := decimal.NewFromInt(89900)

	input := AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price, Locale: "en-US"}
	if _, err := svc.AddItem(context.Background(), input); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), input); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	notice, err := noticeService.Current(context.Background())
	if err != nil {
		t.Fatalf("current notice failed: %v", err)
	}
	if notice == nil {
		t.Fatal("expected an active notice")
	}
	if notice.Message != "BMW M3 added to cart, 2 item(s) in total" {
		t.Fatalf("notice message = %q", notice.Message)
	}
	if notice.DurationMS != 2500 {
		t.Fatalf("notice duration = %d, want 2500", notice.DurationMS)
	}
}

func TestPersistFailureDegradesToMemory(t *testing.T) {
	base := store.NewMemoryKV()
	kv := &flakyKV{KV: base, failSet: true}
	svc := newCartServiceTest(t, kv)
	ctx := context.Background()
	price := decimal.NewFromInt(89900)

	snapshot, err := svc.AddItem(ctx, AddCartItemInput{ProductID: 1, Name: "BMW M3", UnitPrice: &price})
	if err != nil {
		t.Fatalf("add during outage failed: %v", err)
	}
	if !snapshot.Degraded {
		t.Fatal("expected degraded snapshot during storage outage")
	}
	if len(snapshot.Lines) != 1 {
		t.Fatalf("in-memory cart lost the line: %d", len(snapshot.Lines))
	}

	kv.failSet = false
	snapshot, err = svc.SetQuantity(ctx, 1, 2)
	if err != nil {
		t.Fatalf("set quantity after recovery failed: %v", err)
	}
	if snapshot.Degraded {
		t.Fatal("expected degraded flag cleared after successful write")
	}
	want := `[{"id":1,"name":"BMW M3","price":89900,"quantity":2}]`
	if got := mustGet(t, kv, "cart"); got != want {
		t.Fatalf("persisted cart = %s, want %s", got, want)
	}
}
