package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
)

// RegisterRoutes registers the health check on the provided Echo
// instance.  Load balancers and monitoring systems use it to verify
// that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog wires the room catalog and identity endpoints under
// the rate limiter.  The read endpoints additionally sit behind the
// Redis response cache: room lists and availability views are the hot
// read path and tolerate a short TTL.
func RegisterCatalog(e *echo.Echo, rooms *handler.RoomHandler, users *handler.UserHandler, rdb *redis.Client, limit echo.MiddlewareFunc) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	g := e.Group("/v1", limit)
	g.POST("/rooms", rooms.CreateRoom)
	g.GET("/rooms", rooms.ListRooms, cache)
	g.GET("/rooms/:id", rooms.GetRoom, cache)
	g.PATCH("/rooms/:id", rooms.SetRoomActive)
	g.POST("/users", users.CreateUser)
}

// RegisterBooking wires reservation creation, search and deletion
// under the rate limiter.
func RegisterBooking(e *echo.Echo, reservations *handler.ReservationHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/v1", limit)
	g.POST("/reservations", reservations.CreateReservation)
	g.POST("/reservations/search", reservations.SearchReservations)
	g.DELETE("/reservations", reservations.DeleteReservation)
}

// RegisterPayments wires payment initiation, the status query and the
// settlement webhook.  The webhook route lives outside /v1 and takes
// no cache or rate-limit middleware: its path shape is part of the
// wire contract with the provider side, and a throttled settlement
// would strand the payment PENDING since providers do not retry.
func RegisterPayments(e *echo.Echo, payments *handler.PaymentHandler, webhooks *handler.WebhookHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/v1", limit)
	g.POST("/reservations/:id/payment", payments.ProcessPayment)
	g.POST("/payments/:id/status", payments.PaymentStatus)

	e.POST("/webhooks/payments/:provider", webhooks.Receive)
}
