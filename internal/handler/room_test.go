package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/repository"
)

func patchRoom(t *testing.T, h *RoomHandler, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/rooms/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.SetRoomActive(c))
	return rec
}

func TestSetRoomActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewRoomHandler(repository.NewRoomRepo(db), repository.NewReservationRepo(db))

	mock.ExpectExec(`UPDATE rooms SET is_active = \?`).
		WithArgs(false, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	rec := patchRoom(t, h, "3", `{"is_active":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Zero rows touched means the room does not exist.
	mock.ExpectExec(`UPDATE rooms SET is_active = \?`).
		WithArgs(true, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	rec = patchRoom(t, h, "99", `{"is_active":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = patchRoom(t, h, "3", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = patchRoom(t, h, "abc", `{"is_active":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}
