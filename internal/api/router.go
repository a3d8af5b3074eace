package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/kosarica/internal/cart"
	"github.com/erazemk/kosarica/internal/storage"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, secret string) http.Handler {
	kv := &storage.SQLite{DB: db}
	handler := &CartHandler{Registry: cart.NewRegistry(kv)}

	mux := http.NewServeMux()
	session := SessionMiddleware(secret)

	mux.Handle("GET /api/cart", session(http.HandlerFunc(handler.View)))
	mux.Handle("PUT /api/cart/form", session(http.HandlerFunc(handler.UpdateForm)))
	mux.Handle("POST /api/cart/commit", session(http.HandlerFunc(handler.Commit)))
	mux.Handle("POST /api/cart/items/{id}/edit", session(http.HandlerFunc(handler.BeginEdit)))
	mux.Handle("DELETE /api/cart/items/{id}", session(http.HandlerFunc(handler.Remove)))
	mux.Handle("POST /api/cart/edit/cancel", session(http.HandlerFunc(handler.CancelEdit)))
	mux.Handle("POST /api/cart/clear", session(http.HandlerFunc(handler.RequestClear)))
	mux.Handle("POST /api/cart/clear/confirm", session(http.HandlerFunc(handler.ConfirmClear)))
	mux.Handle("POST /api/cart/clear/cancel", session(http.HandlerFunc(handler.CancelClear)))

	return mux
}
