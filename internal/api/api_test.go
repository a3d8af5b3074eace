package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/erazemk/kosarica/internal/cart"
	"github.com/erazemk/kosarica/internal/db"
	"github.com/erazemk/kosarica/internal/model"
)

const testSecret = "test-secret"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	server := httptest.NewServer(NewRouter(database, testSecret))
	t.Cleanup(server.Close)
	return server
}

// newClient returns a client with a cookie jar, so the session cookie set on
// the first response binds all following requests to the same cart.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// do sends a request and decodes the view from the response.
func do(t *testing.T, client *http.Client, method, url string, body any) cart.View {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s %s: expected 200, got %d", method, url, resp.StatusCode)
	}

	var view cart.View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decoding view: %v", err)
	}
	return view
}

func TestViewStartsEmptyAndSetsSession(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/cart")
	if err != nil {
		t.Fatalf("GET /api/cart: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var sessionSet bool
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			sessionSet = true
		}
	}
	if !sessionSet {
		t.Error("expected session cookie on first contact")
	}

	var view cart.View
	json.NewDecoder(resp.Body).Decode(&view)
	if len(view.Items) != 0 || view.Subtotal != 0 {
		t.Errorf("expected empty cart, got %+v", view)
	}
}

func TestCommitFlow(t *testing.T) {
	server := setupTestServer(t)
	client := newClient(t)

	view := do(t, client, "POST", server.URL+"/api/cart/commit", formRequest{
		Name: "Book", Qty: "2", Amount: "5",
	})

	if len(view.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Items))
	}
	item := view.Items[0]
	if item.Name != "Book" || item.Quantity != 2 || item.UnitPrice != 5 {
		t.Errorf("unexpected item %+v", item)
	}
	if view.SubtotalDisplay != "10.0 k VND" {
		t.Errorf("expected subtotal display %q, got %q", "10.0 k VND", view.SubtotalDisplay)
	}
	if view.TotalQuantity != 2 {
		t.Errorf("expected total quantity 2, got %d", view.TotalQuantity)
	}

	// The item survives a fresh read on the same session.
	view = do(t, client, "GET", server.URL+"/api/cart", nil)
	if len(view.Items) != 1 {
		t.Errorf("expected item to persist across reads, got %+v", view.Items)
	}
}

func TestCommitValidationErrors(t *testing.T) {
	server := setupTestServer(t)
	client := newClient(t)

	view := do(t, client, "POST", server.URL+"/api/cart/commit", formRequest{})

	want := []string{model.MsgNameRequired, model.MsgQtyRequired, model.MsgAmountRequired}
	if len(view.Form.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), view.Form.Errors)
	}
	for i, msg := range want {
		if view.Form.Errors[i] != msg {
			t.Errorf("error %d = %q, want %q", i, view.Form.Errors[i], msg)
		}
	}
	if len(view.Items) != 0 {
		t.Errorf("expected no items after failed commit, got %+v", view.Items)
	}
}

func TestFormBuffersThenCommit(t *testing.T) {
	server := setupTestServer(t)
	client := newClient(t)

	view := do(t, client, "PUT", server.URL+"/api/cart/form", formRequest{
		Name: "Pen", Qty: "3", Amount: "1,5",
	})
	if view.Form.Name != "Pen" || view.Form.PriceInput != "1,5" {
		t.Fatalf("expected buffers stored, got %+v", view.Form)
	}

	// Commit without a body commits the stored buffers.
	view = do(t, client, "POST", server.URL+"/api/cart/commit", nil)
	if len(view.Items) != 1 || view.Items[0].UnitPrice != 1.5 {
		t.Errorf("expected committed item with price 1.5, got %+v", view.Items)
	}
	if view.Form.Name != "" {
		t.Errorf("expected form reset after commit, got %+v", view.Form)
	}
}

func TestEditAndRemoveFlow(t *testing.T) {
	server := setupTestServer(t)
	client := newClient(t)

	do(t, client, "POST", server.URL+"/api/cart/commit", formRequest{Name: "A", Qty: "1", Amount: "1"})
	view := do(t, client, "POST", server.URL+"/api/cart/commit", formRequest{Name: "B", Qty: "1", Amount: "1"})
	idA, idB := view.Items[0].ID, view.Items[1].ID

	// Begin edit populates the form.
	view = do(t, client, "POST", server.URL+"/api/cart/items/"+idA+"/edit", nil)
	if view.Form.EditingID != idA || view.Form.Name != "A" {
		t.Fatalf("expected edit form for A, got %+v", view.Form)
	}

	// Save keeps the id and position.
	view = do(t, client, "POST", server.URL+"/api/cart/commit", formRequest{Name: "A2", Qty: "2", Amount: "3"})
	if view.Items[0].ID != idA || view.Items[0].Name != "A2" {
		t.Errorf("expected edited item in place, got %+v", view.Items)
	}

	// Cancel edit resets the form without touching items.
	do(t, client, "POST", server.URL+"/api/cart/items/"+idB+"/edit", nil)
	view = do(t, client, "POST", server.URL+"/api/cart/edit/cancel", nil)
	if view.Form.EditingID != "" || len(view.Items) != 2 {
		t.Errorf("expected cancelled edit with items intact, got %+v", view)
	}

	// Remove.
	view = do(t, client, "DELETE", server.URL+"/api/cart/items/"+idB, nil)
	if len(view.Items) != 1 || view.Items[0].ID != idA {
		t.Errorf("expected only A left, got %+v", view.Items)
	}
}

func TestClearConfirmationFlow(t *testing.T) {
	server := setupTestServer(t)
	client := newClient(t)

	do(t, client, "POST", server.URL+"/api/cart/commit", formRequest{Name: "Book", Qty: "2", Amount: "5"})

	// Confirm without a request is a no-op.
	view := do(t, client, "POST", server.URL+"/api/cart/clear/confirm", nil)
	if len(view.Items) != 1 {
		t.Fatal("expected items untouched without a pending clear")
	}

	// Request, then cancel.
	view = do(t, client, "POST", server.URL+"/api/cart/clear", nil)
	if !view.ClearPending {
		t.Error("expected pending clear after request")
	}
	view = do(t, client, "POST", server.URL+"/api/cart/clear/cancel", nil)
	if view.ClearPending || len(view.Items) != 1 {
		t.Errorf("expected dismissed clear with items intact, got %+v", view)
	}

	// Request, then confirm.
	do(t, client, "POST", server.URL+"/api/cart/clear", nil)
	view = do(t, client, "POST", server.URL+"/api/cart/clear/confirm", nil)
	if len(view.Items) != 0 || view.ClearPending {
		t.Errorf("expected empty cart after confirmed clear, got %+v", view)
	}
}

func TestSessionIsolation(t *testing.T) {
	server := setupTestServer(t)
	first := newClient(t)
	second := newClient(t)

	do(t, first, "POST", server.URL+"/api/cart/commit", formRequest{Name: "Book", Qty: "2", Amount: "5"})

	view := do(t, second, "GET", server.URL+"/api/cart", nil)
	if len(view.Items) != 0 {
		t.Errorf("expected second session to start empty, got %+v", view.Items)
	}
}
