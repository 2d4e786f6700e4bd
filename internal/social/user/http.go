package user

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

	router.Post("/", handler.createUser)
	router.Put("/", handler.updateUser)
	router.Get("/", handler.listUsers)
	router.Delete("/", handler.clearUsers)

	router.Get("/{id}", handler.getUser)
	router.Delete("/{id}", handler.deleteUser)

	router.Put("/{id}/friends/{friendId}", handler.addFriend)
	router.Delete("/{id}/friends/{friendId}", handler.deleteFriend)
	router.Get("/{id}/friends", handler.listFriends)
	router.Get("/{id}/friends/common/{otherId}", handler.listMutualFriends)

	return router
}

func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var payload User
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

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	var payload User
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

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.service.FindAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

func (handler *Handler) clearUsers(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Clear(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
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

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
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

func (handler *Handler) addFriend(writer http.ResponseWriter, request *http.Request) {
	userID, friendID, err := friendPairParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddFriend(request.Context(), userID, friendID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "Friend added"})
}

func (handler *Handler) deleteFriend(writer http.ResponseWriter, request *http.Request) {
	userID, friendID, err := friendPairParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.service.DeleteFriend(request.Context(), userID, friendID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "There was nothing to remove"
	if removed {
		message = "Friend removed"
	}
	respond.OK(writer, map[string]string{"message": message})
}

func (handler *Handler) listFriends(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	friends, err := handler.service.GetFriends(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, friends)
}

func (handler *Handler) listMutualFriends(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	otherID, err := requestutil.Int64Param(request, "otherId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mutual, err := handler.service.MutualFriends(request.Context(), id, otherID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mutual)
}

func friendPairParams(request *http.Request) (int64, int64, error) {
	userID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		return 0, 0, err
	}
	friendID, err := requestutil.Int64Param(request, "friendId")
	if err != nil {
		return 0, 0, err
	}
	return userID, friendID, nil
}
