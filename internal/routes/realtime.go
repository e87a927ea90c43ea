package routes

import (
	"hospital-meals/internal/controllers"
	"hospital-meals/pkg/service"
	appwebsocket "hospital-meals/pkg/websocket"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runRealtimeRouter(api *echo.Group, hub *appwebsocket.Hub, jwtSvc service.JWTService, logger *zap.Logger) {
	wsCtrl := controllers.NewWebSocketController(hub, jwtSvc, logger)
	api.GET("/ws", wsCtrl.ServeWs)
}
