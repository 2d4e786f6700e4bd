package mpa

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mkuznet/cinelog/internal/platform/request"
	"github.com/mkuznet/cinelog/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listRatings)
	router.Get("/{id}", handler.getRating)
	return router
}

func (handler *Handler) listRatings(writer http.ResponseWriter, request *http.Request) {
	ratings, err := handler.service.ListRatings(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ratings)
}

func (handler *Handler) getRating(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, err := handler.service.GetRating(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rating)
}
