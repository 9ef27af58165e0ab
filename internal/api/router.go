package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/cart-service/internal/api/handlers"
)

// NewRouter builds the HTTP router for the cart-service
func NewRouter(svc handlers.CartService) http.Handler {
	r := chi.NewRouter()

	cartHandler := handlers.NewCartHandler(svc)

	r.Get("/products", cartHandler.ListProducts)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Post("/items", cartHandler.AddItem)
		r.Patch("/items/{productID}", cartHandler.UpdateQuantity)
		r.Delete("/items/{productID}", cartHandler.RemoveItem)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
