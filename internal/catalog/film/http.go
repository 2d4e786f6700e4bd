package film

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkuznet/cinelog/internal/platform/constants"
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

	router.Post("/", handler.createFilm)
	router.Put("/", handler.updateFilm)
	router.Get("/", handler.listFilms)
	router.Delete("/", handler.clearFilms)

	// Static segment registered before the wildcard id route.
	router.Get("/popular", handler.listPopular)

	router.Get("/{id}", handler.getFilm)
	router.Delete("/{id}", handler.deleteFilm)

	router.Put("/{id}/like/{userId}", handler.addLike)
	router.Delete("/{id}/like/{userId}", handler.deleteLike)

	return router
}

func (handler *Handler) createFilm(writer http.ResponseWriter, request *http.Request) {
	var payload Film
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), &payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateFilm(writer http.ResponseWriter, request *http.Request) {
	var payload Film
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), &payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) listFilms(writer http.ResponseWriter, request *http.Request) {
	films, err := handler.service.FindAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, films)
}

func (handler *Handler) clearFilms(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Clear(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listPopular(writer http.ResponseWriter, request *http.Request) {
	count := requestutil.QueryIntD(request, "count", constants.DefaultPopularCount)

	films, err := handler.service.FindPopular(request.Context(), count)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, films)
}

func (handler *Handler) getFilm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.FindByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) deleteFilm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addLike(writer http.ResponseWriter, request *http.Request) {
	filmID, userID, err := likePairParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddLike(request.Context(), filmID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "Like added"})
}

func (handler *Handler) deleteLike(writer http.ResponseWriter, request *http.Request) {
	filmID, userID, err := likePairParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.service.DeleteLike(request.Context(), filmID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "There was nothing to remove"
	if removed {
		message = "Like removed"
	}
	respond.OK(writer, map[string]string{"message": message})
}

func likePairParams(request *http.Request) (int64, int64, error) {
	filmID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := requestutil.Int64Param(request, "userId")
	if err != nil {
		return 0, 0, err
	}
	return filmID, userID, nil
}
