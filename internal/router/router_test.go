package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petshop/internal/router"
)

const bearer = "Bearer anything"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	h, err := router.NewRouter(router.Options{DebugAuthHeader: true})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_CheckoutPayAndSync(t *testing.T) {
	ts := newServer(t)

	// 1) Checkout: el precio sale del catálogo (prod-1 = 3290)
	var order struct {
		ID            string  `json:"id"`
		UserID        string  `json:"userId"`
		TotalAmount   float64 `json:"totalAmount"`
		PaymentStatus string  `json:"paymentStatus"`
		OrderStatus   string  `json:"orderStatus"`
		Items         []struct {
			Price float64 `json:"price"`
		} `json:"items"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/orders", bearer, map[string]any{
			"items": []map[string]any{{"productId": "prod-1", "quantity": 2, "price": 1}},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create order, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &order)
	}
	if order.UserID != "mock-user-id" {
		t.Fatalf("expected mock identity, got %q", order.UserID)
	}
	if order.TotalAmount != 6580 || order.Items[0].Price != 3290 {
		t.Fatalf("expected catalog price snapshot, got total=%v price=%v", order.TotalAmount, order.Items[0].Price)
	}
	if order.PaymentStatus != "pending" || order.OrderStatus != "pending" {
		t.Fatalf("expected pending/pending, got %s/%s", order.PaymentStatus, order.OrderStatus)
	}

	// 2) Pago con tarjeta
	{
		st, body := doReq(t, ts.URL, "POST", "/payment/card", bearer, map[string]any{
			"orderId":    order.ID,
			"amount":     6580,
			"cardNumber": "4242424242424242",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 card payment, got %d body=%s", st, string(body))
		}
		var rec struct {
			Success    bool   `json:"success"`
			PaymentID  string `json:"paymentId"`
			MaskedCard string `json:"maskedCard"`
			Status     string `json:"status"`
		}
		_ = json.Unmarshal(body, &rec)
		if !rec.Success || rec.Status != "completed" || !strings.HasPrefix(rec.PaymentID, "card-") {
			t.Fatalf("unexpected receipt: %s", string(body))
		}
		if rec.MaskedCard != "****4242" {
			t.Fatalf("expected masked card ****4242, got %q", rec.MaskedCard)
		}
	}

	// 3) El pedido quedó completed/processing
	{
		st, body := doReq(t, ts.URL, "GET", "/orders/"+order.ID, bearer, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get order, got %d", st)
		}
		_ = json.Unmarshal(body, &order)
		if order.PaymentStatus != "completed" || order.OrderStatus != "processing" {
			t.Fatalf("expected completed/processing, got %s/%s", order.PaymentStatus, order.OrderStatus)
		}
	}

	// 4) Sync con 1C no toca estados
	{
		st, body := doReq(t, ts.URL, "POST", "/1c/sync", bearer, map[string]any{"orderId": order.ID})
		if st != http.StatusOK {
			t.Fatalf("expected 200 sync, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/1c/status/"+order.ID, bearer, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 status, got %d", st)
		}
		var s struct {
			SyncedWith1C bool    `json:"syncedWith1C"`
			Sync1CNumber *string `json:"sync1CNumber"`
			OrderStatus  string  `json:"orderStatus"`
		}
		_ = json.Unmarshal(body, &s)
		if !s.SyncedWith1C || s.Sync1CNumber == nil || !strings.HasPrefix(*s.Sync1CNumber, "1C-") {
			t.Fatalf("expected synced order, got %s", string(body))
		}
		if s.OrderStatus != "processing" {
			t.Fatalf("sync must not change order status, got %s", s.OrderStatus)
		}
	}

	// 5) Pedido inexistente
	{
		st, _ := doReq(t, ts.URL, "POST", "/payment/sbp", bearer, map[string]any{"orderId": "nope", "amount": 10})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 paying unknown order, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/1c/status/nope", bearer, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 status of unknown order, got %d", st)
		}
	}
}

func TestHTTP_CreateOrder_RejectsEmptyItems(t *testing.T) {
	ts := newServer(t)

	for _, payload := range []map[string]any{
		{"items": []any{}},
		{},
	} {
		st, body := doReq(t, ts.URL, "POST", "/orders", bearer, payload)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "must contain at least one item") {
			t.Fatalf("expected item count message, got %s", string(body))
		}
	}

	st, body := doReq(t, ts.URL, "POST", "/orders", bearer, map[string]any{
		"items": []map[string]any{{"productId": "does-not-exist", "quantity": 1}},
	})
	if st != http.StatusBadRequest || !strings.Contains(string(body), "unknown product") {
		t.Fatalf("expected 400 unknown product, got %d body=%s", st, string(body))
	}
}

func TestHTTP_PaymentWebhook(t *testing.T) {
	ts := newServer(t)
	orderID := createOrder(t, ts.URL)

	st, body := doReq(t, ts.URL, "POST", "/payment/webhook", "", map[string]any{
		"event":  "payment.canceled",
		"object": map[string]any{"metadata": map[string]any{"orderId": orderID}},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 webhook, got %d body=%s", st, string(body))
	}

	_, body = doReq(t, ts.URL, "GET", "/orders/"+orderID, bearer, nil)
	if !strings.Contains(string(body), `"paymentStatus":"failed"`) {
		t.Fatalf("expected failed payment, got %s", string(body))
	}
}

func TestHTTP_RequiresIdentity(t *testing.T) {
	ts := newServer(t)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/pets"},
		{"POST", "/orders"},
		{"GET", "/orders"},
		{"POST", "/payment/card"},
		{"POST", "/1c/catalog/import"},
		{"GET", "/recommendations/x"},
		{"GET", "/wishlist"},
	} {
		st, _ := doReq(t, ts.URL, tc.method, tc.path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, st)
		}
	}

	for _, path := range []string{"/health", "/products", "/products/prod-1", "/categories", "/pets/breeds?petType=dog"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusOK {
			t.Fatalf("GET %s: expected public 200, got %d", path, st)
		}
	}
}

func TestHTTP_PetOwnership(t *testing.T) {
	ts := newServer(t)

	petID := createPet(t, ts.URL, "debug:owner-1", map[string]any{
		"name":      "Бобик",
		"petType":   "dog",
		"birthDate": "2021-03-01",
		"weight":    12.5,
		"gender":    "male",
	})

	// Otro usuario no la ve ni la puede borrar (404, no 403)
	for _, m := range []string{"GET", "DELETE"} {
		st, _ := doReq(t, ts.URL, m, "/pets/"+petID, "debug:owner-2", nil)
		if st != http.StatusNotFound {
			t.Fatalf("%s by other user: expected 404, got %d", m, st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "PUT", "/pets/"+petID, "debug:owner-2", map[string]any{"name": "Шарик"})
		if st != http.StatusNotFound {
			t.Fatalf("PUT by other user: expected 404, got %d", st)
		}
	}

	// Merge parcial por el dueño
	{
		st, body := doReq(t, ts.URL, "PUT", "/pets/"+petID, "debug:owner-1", map[string]any{"weight": 14})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var p struct {
			Name   string  `json:"name"`
			Weight float64 `json:"weight"`
		}
		_ = json.Unmarshal(body, &p)
		if p.Name != "Бобик" || p.Weight != 14 {
			t.Fatalf("expected partial merge, got %s", string(body))
		}
	}

	st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, "debug:owner-1", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 delete by owner, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/pets/"+petID, "debug:owner-1", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
}

func TestHTTP_CreatePet_Validation(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/pets", bearer, map[string]any{
		"name":      "Мурка",
		"petType":   "dragon",
		"birthDate": "01.02.2020",
		"weight":    0,
		"gender":    "female",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", st)
	}
	for _, field := range []string{"petType", "birthDate", "weight"} {
		if !strings.Contains(string(body), `"`+field+`"`) {
			t.Fatalf("expected field error for %s, got %s", field, string(body))
		}
	}
}

func TestHTTP_Recommendations(t *testing.T) {
	ts := newServer(t)

	petID := createPet(t, ts.URL, bearer, map[string]any{
		"name":      "Рекс",
		"petType":   "dog",
		"breedId":   "breed-husky",
		"birthDate": "2020-05-10",
		"weight":    12.5,
		"gender":    "male",
		"allergies": []string{"Курица"},
	})

	st, body := doReq(t, ts.URL, "GET", "/recommendations/"+petID, bearer, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	var recs []struct {
		Product struct {
			ID        string   `json:"id"`
			PetType   string   `json:"petType"`
			Allergens []string `json:"allergens"`
		} `json:"product"`
		Score   int      `json:"score"`
		Reasons []string `json:"reasons"`
	}
	if err := json.Unmarshal(body, &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) == 0 || len(recs) > 20 {
		t.Fatalf("expected 1..20 recommendations, got %d", len(recs))
	}
	for i, rec := range recs {
		if rec.Product.PetType != "dog" && rec.Product.PetType != "all" && rec.Product.PetType != "" {
			t.Fatalf("species leak: %s (%s)", rec.Product.ID, rec.Product.PetType)
		}
		for _, a := range rec.Product.Allergens {
			if strings.Contains(strings.ToLower(a), "курица") {
				t.Fatalf("allergen leak: %s", rec.Product.ID)
			}
		}
		if i > 0 && recs[i-1].Score < rec.Score {
			t.Fatalf("not sorted by score desc at %d", i)
		}
	}

	st, _ = doReq(t, ts.URL, "GET", "/recommendations/unknown", bearer, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown pet, got %d", st)
	}
}

func TestHTTP_CatalogImport(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/1c/catalog/import", bearer, []map[string]any{{"name": "X"}})
	if st != http.StatusOK {
		t.Fatalf("expected 200 import, got %d body=%s", st, string(body))
	}
	var res struct {
		Success       bool `json:"success"`
		ImportedCount int  `json:"importedCount"`
	}
	_ = json.Unmarshal(body, &res)
	if !res.Success || res.ImportedCount != 1 {
		t.Fatalf("unexpected import result: %s", string(body))
	}

	_, body = doReq(t, ts.URL, "GET", "/products", "", nil)
	var page struct {
		Total    int `json:"total"`
		Products []struct {
			ID            string  `json:"id"`
			Name          string  `json:"name"`
			Price         float64 `json:"price"`
			InStock       bool    `json:"inStock"`
			StockQuantity int     `json:"stockQuantity"`
		} `json:"products"`
	}
	_ = json.Unmarshal(body, &page)
	if page.Total != 1 {
		t.Fatalf("import must replace the catalog, got total=%d", page.Total)
	}
	p := page.Products[0]
	if !strings.HasPrefix(p.ID, "imported-") || p.Name != "X" || p.Price != 0 || !p.InStock || p.StockQuantity != 100 {
		t.Fatalf("unexpected imported product: %+v", p)
	}

	st, body = doReq(t, ts.URL, "POST", "/1c/catalog/import", bearer, map[string]any{"name": "not an array"})
	if st != http.StatusBadRequest || !strings.Contains(string(body), "Expected array of products") {
		t.Fatalf("expected 400 for non-array body, got %d body=%s", st, string(body))
	}
}

func TestHTTP_ProductsQuery(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/products?petType=dog&sortBy=price&sortOrder=asc&limit=3", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	var page struct {
		Products []struct {
			Price float64 `json:"price"`
		} `json:"products"`
		Limit      int `json:"limit"`
		TotalPages int `json:"totalPages"`
	}
	_ = json.Unmarshal(body, &page)
	if page.Limit != 3 || len(page.Products) != 3 {
		t.Fatalf("expected 3 products, got %s", string(body))
	}
	for i := 1; i < len(page.Products); i++ {
		if page.Products[i-1].Price > page.Products[i].Price {
			t.Fatalf("expected ascending price, got %s", string(body))
		}
	}

	for _, q := range []string{"limit=0", "page=0", "sortBy=color", "minPrice=abc"} {
		st, _ := doReq(t, ts.URL, "GET", "/products?"+q, "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, st)
		}
	}

	st, _ = doReq(t, ts.URL, "GET", "/products/does-not-exist", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
}

func createPet(t *testing.T, baseURL, identity string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", identity, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createOrder(t *testing.T, baseURL string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/orders", bearer, map[string]any{
		"items":          []map[string]any{{"productId": "prod-7", "quantity": 1}},
		"deliveryMethod": "pickup",
		"paymentMethod":  "sbp",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create order, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.ID
}

// doReq: identity "" => sin identidad; "debug:<id>" => X-Debug-User-ID; otro valor => Authorization.
func doReq(t *testing.T, baseURL, method, path, identity string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case identity == "":
	case strings.HasPrefix(identity, "debug:"):
		req.Header.Set("X-Debug-User-ID", strings.TrimPrefix(identity, "debug:"))
	default:
		req.Header.Set("Authorization", identity)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func TestHTTP_RateLimitIgnoresForwardedForUnlessTrusted(t *testing.T) {
	hit := func(h http.Handler, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	direct, err := router.NewRouter(router.Options{RateLimitRPS: 0.001, RateLimitBurst: 1})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	if st := hit(direct, "203.0.113.1"); st != http.StatusOK {
		t.Fatalf("expected 200 on first request, got %d", st)
	}
	if st := hit(direct, "203.0.113.2"); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 with a forged X-Forwarded-For, got %d", st)
	}

	proxied, err := router.NewRouter(router.Options{RateLimitRPS: 0.001, RateLimitBurst: 1, TrustProxy: true})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		if st := hit(proxied, ip); st != http.StatusOK {
			t.Fatalf("expected 200 for %s behind trusted proxy, got %d", ip, st)
		}
	}
}
