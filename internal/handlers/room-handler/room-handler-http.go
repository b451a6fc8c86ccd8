package room_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/xenn00/livestream-service/internal/dtos/room_dto"
	app_error "github.com/xenn00/livestream-service/internal/errors"
	"github.com/xenn00/livestream-service/internal/handlers"
	"github.com/xenn00/livestream-service/internal/middleware"
	room_service "github.com/xenn00/livestream-service/internal/use-case/room-case"
	"github.com/xenn00/livestream-service/internal/utils"
)

type RoomHandler struct {
	Validate *validator.Validate
	Service  room_service.RoomServiceContract
}

func NewRoomHandler(service room_service.RoomServiceContract) *RoomHandler {
	return &RoomHandler{
		Validate: validator.New(),
		Service:  service,
	}
}

func userFromContext(r *http.Request) (*utils.Claims, *app_error.AppError) {
	claims, ok := r.Context().Value(middleware.UserClaimsKey).(*utils.Claims)
	if !ok || claims.Sub == "" {
		return nil, app_error.Unauthorized("user claims not found in context", "context")
	}
	return claims, nil
}

func requestID(r *http.Request) string {
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		return "unknown"
	}
	return reqID
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.CreateRoomRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	claims, appErr := userFromContext(r)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.Service.CreateRoom(r.Context(), claims.Sub, req)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(handlers.CreateResponse("room created successfully", *resp, requestID(r)))

	return nil
}

func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomToken := chi.URLParam(r, "roomToken")

	claims, appErr := userFromContext(r)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.Service.JoinRoom(r.Context(), roomToken, claims.Sub)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room joined successfully", *resp, requestID(r)))

	return nil
}

func (h *RoomHandler) LeaveRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomToken := chi.URLParam(r, "roomToken")

	claims, appErr := userFromContext(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.Service.LeaveRoom(r.Context(), roomToken, claims.Sub); appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room left successfully", "OK", requestID(r)))

	return nil
}

func (h *RoomHandler) EndRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomToken := chi.URLParam(r, "roomToken")

	claims, appErr := userFromContext(r)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.Service.EndRoom(r.Context(), roomToken, claims.Sub)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room ended successfully", *resp, requestID(r)))

	return nil
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomToken := chi.URLParam(r, "roomToken")

	resp, appErr := h.Service.GetRoom(r.Context(), roomToken)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room fetched successfully", *resp, requestID(r)))

	return nil
}

func (h *RoomHandler) ListActiveRooms(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	resp, appErr := h.Service.ListActiveRooms(r.Context())
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("active rooms fetched successfully", resp, requestID(r)))

	return nil
}

func (h *RoomHandler) ListMyRooms(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := userFromContext(r)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.Service.ListRoomsForOwner(r.Context(), claims.Sub)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("owned rooms fetched successfully", resp, requestID(r)))

	return nil
}
