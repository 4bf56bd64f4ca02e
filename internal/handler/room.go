package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/timeslot"
)

// closingHour/closingMinute define the end of the bookable day. The
// last slot of any room ends at 23:30.
const (
	closingHour   = 23
	closingMinute = 30
)

// RoomHandler serves the room catalog: creation, listing and the
// per-room detail view with its available time slots.
type RoomHandler struct {
	RoomRepo        *repository.RoomRepo
	ReservationRepo *repository.ReservationRepo
}

func NewRoomHandler(roomRepo *repository.RoomRepo, reservationRepo *repository.ReservationRepo) *RoomHandler {
	if roomRepo == nil || reservationRepo == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{RoomRepo: roomRepo, ReservationRepo: reservationRepo}
}

// CreateRoom handles POST /v1/rooms. It adds a room to the catalog.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var body struct {
		Name         string `json:"name"`
		Capacity     uint32 `json:"capacity"`
		HalfHourRate uint32 `json:"half_hour_rate"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.Capacity == 0 || body.HalfHourRate == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, capacity and half_hour_rate are required"})
	}
	id, err := h.RoomRepo.Create(c.Request().Context(), body.Name, body.Capacity, body.HalfHourRate)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// ListRooms handles GET /v1/rooms. It returns all active rooms.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.RoomRepo.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// SetRoomActive handles PATCH /v1/rooms/:id. It toggles the active
// flag so a room can be withdrawn from the catalog without losing its
// reservation history.
func (h *RoomHandler) SetRoomActive(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil || body.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active is required"})
	}
	if err := h.RoomRepo.SetActive(c.Request().Context(), roomID, *body.IsActive); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": roomID, "is_active": *body.IsActive})
}

// timeSlotView is one free window rendered as HH:mm bounds.
type timeSlotView struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// GetRoom handles GET /v1/rooms/:id. It returns the room and the
// free time slots remaining today, computed from the reservations
// still in progress or upcoming.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	room, err := h.RoomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}

	now := time.Now().UTC()
	reservations, err := h.ReservationRepo.ListForRoomAfter(ctx, roomID, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}

	reserved := make([]timeslot.Slot, 0, len(reservations))
	for _, r := range reservations {
		reserved = append(reserved, timeslot.Slot{Start: r.StartTime, End: r.EndTime})
	}
	closing := time.Date(now.Year(), now.Month(), now.Day(), closingHour, closingMinute, 0, 0, time.UTC)

	slots := timeslot.Available(now, reserved, closing)
	views := make([]timeSlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, timeSlotView{
			StartTime: s.Start.Format("15:04"),
			EndTime:   s.End.Format("15:04"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room":       room,
		"time_slots": views,
	})
}
