package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/routehaven/orsproxy/pkg/upstream"
)

func respondJSONBody(c *gin.Context, status int, body string) {
	c.Data(status, "application/json", []byte(body))
}

// forwardVerbatim writes an upstream response back to the client byte for
// byte, preserving its status and content type (application/json when the
// upstream sent none), as required for non-2xx upstream responses.
func forwardVerbatim(c *gin.Context, resp upstream.Response) {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

const (
	errRoutingUnavailable  = "Сервис маршрутизации недоступен"
	errMatrixUnavailable   = "Сервис построения матрицы недоступен"
	errGeocodeUnavailable  = "Сервис геокодирования недоступен"
	errBadPoint            = "Координаты должны быть в формате lon,lat"
	errBadLocations        = "Координаты должны быть в формате lon,lat;lon2,lat2;..."
	errStartEndRequired    = "Параметры start и end обязательны"
	errLocationsRequired   = "Параметр locations обязателен"
	errLocationsUnparsable = "Не удалось разобрать список координат"
	errQueryRequired       = "Параметр q (или text) обязателен"
)
