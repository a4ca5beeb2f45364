package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ah_sniper/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", handler(s.getV1Sessions))
				r.Route("/{realmID}", func(r chi.Router) {
					r.Get("/", handler(s.getV1Session))
					r.Get("/deals", handler(s.getV1SessionDeals))
					r.Post("/skip", handler(s.postV1SessionSkip))
					r.Post("/buy", handler(s.postV1SessionBuy))
					r.Post("/enabled", handler(s.postV1SessionEnabled))
				})
			})
			r.Get("/purchases", handler(s.getV1Purchases))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
