package genre

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
	router.Get("/", handler.listGenres)
	router.Get("/{id}", handler.getGenre)
	return router
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.GetGenre(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}
