package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/motorstore/internal/config"
	"github.com/motorstore/internal/provider"
	"github.com/motorstore/internal/queue"
	"github.com/motorstore/internal/repository"
	"github.com/motorstore/internal/service"
	"github.com/motorstore/internal/store"

	"github.com/gin-gonic/gin"
)

type cartViewAssert struct {
	Lines []struct {
		ProductID uint   `json:"product_id"`
		Name      string `json:"name"`
		UnitPrice string `json:"unit_price"`
		Quantity  int    `json:"quantity"`
		LineTotal string `json:"line_total"`
	} `json:"lines"`
	Empty        bool   `json:"empty"`
	EmptyMessage string `json:"empty_message"`
	ItemCount    int    `json:"item_count"`
	Total        string `json:"total"`
	Footer       struct {
		GrandTotal string   `json:"grand_total"`
		Currency   string   `json:"currency"`
		Actions    []string `json:"actions"`
	} `json:"footer"`
}

type cartEnvelope struct {
	StatusCode int            `json:"status_code"`
	Msg        string         `json:"msg"`
	Data       cartViewAssert `json:"data"`
}

func setupCartHandlerTest(t *testing.T) (*Handler, store.KV) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv := store.NewMemoryKV()
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	noticeService := service.NewNoticeService(repository.NewNoticeRepository(kv), queueClient, 0)
	t.Cleanup(noticeService.Close)

	h := &Handler{Container: &provider.Container{
		Config:        &config.Config{Site: config.SiteConfig{Name: "MotorStore", Currency: "USD"}},
		CartService:   service.NewCartService(repository.NewCartRepository(kv), nil, noticeService),
		NoticeService: noticeService,
	}}
	return h, kv
}

func decodeCartEnvelope(t *testing.T, w *httptest.ResponseRecorder) cartEnvelope {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp cartEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func mustPersistedCart(t *testing.T, kv store.KV) string {
	t.Helper()
	val, found, err := kv.Get(context.Background(), "cart")
	if err != nil {
		t.Fatalf("kv get cart failed: %v", err)
	}
	if !found {
		t.Fatal("persisted cart missing")
	}
	return val
}

func postCartItem(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	h.AddCartItem(c)
	return w
}

func TestGetCartEmptyView(t *testing.T) {
	h, _ := setupCartHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)

	h.GetCart(c)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if !resp.Data.Empty {
		t.Fatal("expected empty cart view")
	}
	if resp.Data.EmptyMessage == "" {
		t.Fatal("empty view should carry an empty message")
	}
	if resp.Data.Footer.GrandTotal != "0.00" {
		t.Fatalf("grand total want 0.00 got %s", resp.Data.Footer.GrandTotal)
	}
	if resp.Data.Footer.Currency != "USD" {
		t.Fatalf("currency want USD got %s", resp.Data.Footer.Currency)
	}
}

func TestAddCartItemRoundTrip(t *testing.T) {
	h, kv := setupCartHandlerTest(t)

	w := postCartItem(t, h, `{"product_id":1,"name":"BMW M3","unit_price":89900}`)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if len(resp.Data.Lines) != 1 {
		t.Fatalf("lines want 1 got %d", len(resp.Data.Lines))
	}
	line := resp.Data.Lines[0]
	if line.ProductID != 1 || line.Name != "BMW M3" || line.Quantity != 1 {
		t.Fatalf("unexpected line: %+v", line)
	}
	if line.UnitPrice != "89900.00" || line.LineTotal != "89900.00" {
		t.Fatalf("price projection want 89900.00 got %s / %s", line.UnitPrice, line.LineTotal)
	}
	if resp.Data.ItemCount != 1 || resp.Data.Total != "89900" {
		t.Fatalf("item_count/total want 1/89900 got %d/%s", resp.Data.ItemCount, resp.Data.Total)
	}

	want := `[{"id":1,"name":"BMW M3","price":89900,"quantity":1}]`
	if got := mustPersistedCart(t, kv); got != want {
		t.Fatalf("persisted cart = %s, want %s", got, want)
	}
}

func TestAddCartItemTwiceIncrementsQuantity(t *testing.T) {
	h, kv := setupCartHandlerTest(t)
	body := `{"product_id":1,"name":"BMW M3","unit_price":89900}`

	postCartItem(t, h, body)
	w := postCartItem(t, h, body)

	resp := decodeCartEnvelope(t, w)
	if len(resp.Data.Lines) != 1 || resp.Data.Lines[0].Quantity != 2 {
		t.Fatalf("expected single line with quantity 2, got %+v", resp.Data.Lines)
	}
	if resp.Data.Total != "179800" {
		t.Fatalf("total want 179800 got %s", resp.Data.Total)
	}

	want := `[{"id":1,"name":"BMW M3","price":89900,"quantity":2}]`
	if got := mustPersistedCart(t, kv); got != want {
		t.Fatalf("persisted cart = %s, want %s", got, want)
	}
}

func TestAddCartItemMalformedBody(t *testing.T) {
	h, _ := setupCartHandlerTest(t)

	w := postCartItem(t, h, `{"product_id":`)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func TestAddCartItemMissingProductID(t *testing.T) {
	h, _ := setupCartHandlerTest(t)

	w := postCartItem(t, h, `{"name":"BMW M3","unit_price":89900}`)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func TestSetCartItemQuantityNumberAndString(t *testing.T) {
	h, _ := setupCartHandlerTest(t)
	postCartItem(t, h, `{"product_id":1,"name":"BMW M3","unit_price":89900}`)

	setQuantity := func(body string) cartEnvelope {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "product_id", Value: "1"}}
		h.SetCartItemQuantity(c)
		return decodeCartEnvelope(t, w)
	}

	resp := setQuantity(`{"quantity":5}`)
	if resp.StatusCode != 0 || resp.Data.Lines[0].Quantity != 5 {
		t.Fatalf("numeric quantity failed: code %d lines %+v", resp.StatusCode, resp.Data.Lines)
	}

	resp = setQuantity(`{"quantity":"3"}`)
	if resp.StatusCode != 0 || resp.Data.Lines[0].Quantity != 3 {
		t.Fatalf("string quantity failed: code %d lines %+v", resp.StatusCode, resp.Data.Lines)
	}
}

func TestSetCartItemQuantityZeroRemovesLine(t *testing.T) {
	h, kv := setupCartHandlerTest(t)
	postCartItem(t, h, `{"product_id":1,"name":"BMW M3","unit_price":89900}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1", strings.NewReader(`{"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "product_id", Value: "1"}}

	h.SetCartItemQuantity(c)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 0 || !resp.Data.Empty {
		t.Fatalf("expected empty cart, got code %d empty %v", resp.StatusCode, resp.Data.Empty)
	}
	if got := mustPersistedCart(t, kv); got != "[]" {
		t.Fatalf("persisted cart = %s, want []", got)
	}
}

func TestSetCartItemQuantityNonNumericText(t *testing.T) {
	h, _ := setupCartHandlerTest(t)
	postCartItem(t, h, `{"product_id":1,"name":"BMW M3","unit_price":89900}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1", strings.NewReader(`{"quantity":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "product_id", Value: "1"}}

	h.SetCartItemQuantity(c)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
	if resp.Msg != "商品数量必须是整数" {
		t.Fatalf("msg want quantity error got %q", resp.Msg)
	}
}

func TestSetCartItemQuantityBadProductParam(t *testing.T) {
	h, _ := setupCartHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/abc", strings.NewReader(`{"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "product_id", Value: "abc"}}

	h.SetCartItemQuantity(c)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func TestRemoveCartItemAbsentIsSilent(t *testing.T) {
	h, _ := setupCartHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/42", nil)
	c.Params = gin.Params{{Key: "product_id", Value: "42"}}

	h.RemoveCartItem(c)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if !resp.Data.Empty {
		t.Fatal("expected empty cart view")
	}
}

func TestClearCartWithoutConfirmKeepsLines(t *testing.T) {
	h, kv := setupCartHandlerTest(t)
	postCartItem(t, h, `{"product_id":1,"name":"BMW M3","unit_price":89900}`)
	persisted := mustPersistedCart(t, kv)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)

	h.ClearCart(c)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Msg != "已取消清空购物车" {
		t.Fatalf("msg want cancel text got %q", resp.Msg)
	}
	if len(resp.Data.Lines) != 1 {
		t.Fatalf("declined clear mutated cart: %+v", resp.Data.Lines)
	}
	if got := mustPersistedCart(t, kv); got != persisted {
		t.Fatalf("persisted cart changed after declined clear: %s", got)
	}
}

func TestClearCartConfirmedEmptiesCart(t *testing.T) {
	h, kv := setupCartHandlerTest(t)
	postCartItem(t, h, `{"product_id":1,"name":"BMW M3","unit_price":89900}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/cart?confirm=true", nil)

	h.ClearCart(c)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Msg != "购物车已清空" {
		t.Fatalf("msg want cleared text got %q", resp.Msg)
	}
	if !resp.Data.Empty {
		t.Fatal("expected empty cart view")
	}
	if got := mustPersistedCart(t, kv); got != "[]" {
		t.Fatalf("persisted cart = %s, want []", got)
	}
}

func TestGetCartCount(t *testing.T) {
	h, _ := setupCartHandlerTest(t)
	postCartItem(t, h, `{"product_id":1,"name":"BMW M3","unit_price":89900}`)
	postCartItem(t, h, `{"product_id":1,"name":"BMW M3","unit_price":89900}`)
	postCartItem(t, h, `{"product_id":2,"name":"Audi RS6","unit_price":119500}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/cart/count", nil)

	h.GetCartCount(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Data.Count != 3 {
		t.Fatalf("count want 3 got %d", resp.Data.Count)
	}
}

func TestGetCartMalformedPersistedValueStartsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	kv := store.NewMemoryKV()
	if err := kv.Set(context.Background(), "cart", "{{{definitely not json"); err != nil {
		t.Fatalf("seed kv failed: %v", err)
	}

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	noticeService := service.NewNoticeService(repository.NewNoticeRepository(kv), queueClient, 0)
	t.Cleanup(noticeService.Close)
	h := &Handler{Container: &provider.Container{
		CartService: service.NewCartService(repository.NewCartRepository(kv), nil, noticeService),
	}}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)

	h.GetCart(c)

	resp := decodeCartEnvelope(t, w)
	if resp.StatusCode != 0 || !resp.Data.Empty {
		t.Fatalf("expected empty cart from malformed storage, got code %d empty %v", resp.StatusCode, resp.Data.Empty)
	}
}

func TestFlexQuantityUnmarshal(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: `5`, want: 5},
		{raw: `"3"`, want: 3},
		{raw: `" 7 "`, want: 7},
		{raw: `2.9`, want: 2},
		{raw: `-1`, want: -1},
		{raw: `"abc"`, wantErr: true},
		{raw: `""`, wantErr: true},
		{raw: `true`, wantErr: true},
		{raw: `"NaN"`, wantErr: true},
		{raw: `"Inf"`, wantErr: true},
		{raw: `"-Inf"`, wantErr: true},
		{raw: `"1e999"`, wantErr: true},
	}
	for _, tc := range cases {
		var q FlexQuantity
		err := json.Unmarshal([]byte(tc.raw), &q)
		if tc.wantErr {
			if !errors.Is(err, errQuantityInvalid) {
				t.Fatalf("raw %s: expected errQuantityInvalid, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("raw %s: unexpected error %v", tc.raw, err)
		}
		if int(q) != tc.want {
			t.Fatalf("raw %s: want %d got %d", tc.raw, tc.want, q)
		}
	}
}
