package handler

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// phonePattern matches Korean mobile numbers of the form
// 01X-XXX(X)-XXXX, the only identity format the system accepts.
var phonePattern = regexp.MustCompile(`^01[0-9]-[0-9]{3,4}-[0-9]{4}$`)

// ValidPhoneNumber reports whether s matches the accepted phone
// number format.
func ValidPhoneNumber(s string) bool { return phonePattern.MatchString(s) }

// ParseClock parses an HH:mm wall-clock string onto today's date in
// UTC. Seconds are always zero.
func ParseClock(s string, now time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

// OnHalfHourGrid reports whether t falls on a :00 or :30 boundary.
func OnHalfHourGrid(t time.Time) bool {
	return t.Second() == 0 && (t.Minute() == 0 || t.Minute() == 30)
}

// Overlaps is the tight half-open interval overlap test:
// [14:00,15:00) and [14:30,15:30) overlap, [14:00,15:00) and
// [15:00,16:00) do not.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// TotalAmount prices a window at the room's half-hour rate, rounding
// partial units up.
func TotalAmount(halfHourRate uint32, start, end time.Time) uint32 {
	minutes := end.Sub(start).Minutes()
	units := (int64(minutes) + 29) / 30
	return uint32(units) * halfHourRate
}

// ReservationHandler implements booking creation, listing and
// deletion. Creation persists the reservation and its provisional
// payment atomically in one transaction; the overlap check runs on a
// locked read of the room's future reservations so two concurrent
// requests for the same slot cannot both pass it.
type ReservationHandler struct {
	RoomRepo        *repository.RoomRepo
	UserRepo        *repository.UserRepo
	ReservationRepo *repository.ReservationRepo
	PaymentRepo     *repository.PaymentRepo
}

func NewReservationHandler(roomRepo *repository.RoomRepo, userRepo *repository.UserRepo, reservationRepo *repository.ReservationRepo, paymentRepo *repository.PaymentRepo) *ReservationHandler {
	if roomRepo == nil || userRepo == nil || reservationRepo == nil || paymentRepo == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		RoomRepo:        roomRepo,
		UserRepo:        userRepo,
		ReservationRepo: reservationRepo,
		PaymentRepo:     paymentRepo,
	}
}

// CreateReservation handles POST /v1/reservations. Times are HH:mm
// on today's date and must sit on the half-hour grid.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var body struct {
		RoomID      uint64 `json:"room_id"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		UserName    string `json:"user_name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	if body.UserName == "" || len(body.UserName) > 20 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_name must be between 1 and 20 characters"})
	}
	if !ValidPhoneNumber(body.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number format (expected 010-1234-5678)"})
	}

	now := time.Now().UTC()
	start, err := ParseClock(body.StartTime, now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time, expected HH:mm"})
	}
	end, err := ParseClock(body.EndTime, now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time, expected HH:mm"})
	}

	ctx := c.Request().Context()
	room, err := h.RoomRepo.GetByID(ctx, body.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}
	user, err := h.UserRepo.GetByNameAndPhone(ctx, body.UserName, body.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}

	if !start.Before(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start time must be before end time"})
	}
	if !OnHalfHourGrid(start) || !OnHalfHourGrid(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "times must be on 00 or 30 minute boundaries"})
	}
	if start.Before(now) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservations are only possible after the current time"})
	}

	tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Locked read: serializes concurrent bookings of the same room.
	existing, err := h.ReservationRepo.ListForRoomAfterTx(ctx, tx, body.RoomID, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	for _, r := range existing {
		if Overlaps(start, end, r.StartTime, r.EndTime) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "time slot already reserved"})
		}
	}

	amount := TotalAmount(room.HalfHourRate, start, end)
	res := &model.Reservation{
		UserID:      user.ID,
		RoomID:      room.ID,
		StartTime:   start,
		EndTime:     end,
		TotalAmount: amount,
		Status:      model.ReservationPending,
	}
	if err := h.ReservationRepo.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	paymentID, err := h.PaymentRepo.CreateTx(ctx, tx, res.ID, amount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create payment"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id": res.ID,
		"payment_id":     paymentID,
		"total_amount":   amount,
	})
}

// SearchReservations handles POST /v1/reservations/search. Listing is
// keyed by the requester's (name, phone) pair.
func (h *ReservationHandler) SearchReservations(c echo.Context) error {
	var body struct {
		UserName    string `json:"user_name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !ValidPhoneNumber(body.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number format (expected 010-1234-5678)"})
	}
	ctx := c.Request().Context()
	user, err := h.UserRepo.GetByNameAndPhone(ctx, body.UserName, body.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}
	items, err := h.ReservationRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}

// DeleteReservation handles DELETE /v1/reservations. The reservation
// must belong to the requesting (name, phone) identity. Payments are
// removed first, then the reservation, all in one transaction.
func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	var body struct {
		UserName      string `json:"user_name"`
		PhoneNumber   string `json:"phone_number"`
		ReservationID uint64 `json:"reservation_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_id is required"})
	}
	if !ValidPhoneNumber(body.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number format (expected 010-1234-5678)"})
	}
	ctx := c.Request().Context()
	user, err := h.UserRepo.GetByNameAndPhone(ctx, body.UserName, body.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}

	tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.ReservationRepo.GetByIDForUserTx(ctx, tx, body.ReservationID, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	if err := h.PaymentRepo.DeleteByReservationTx(ctx, tx, res.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete payments"})
	}
	if err := h.ReservationRepo.DeleteTx(ctx, tx, res.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"message": "reservation deleted"})
}
