package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hirehub/internal/geocoding"
)

// Geocoder resolves coordinates into an address document.
type Geocoder interface {
	Reverse(ctx context.Context, latitude, longitude string) (json.RawMessage, error)
}

type LocationController struct {
	geocoder Geocoder
}

func NewLocationController(geocoder Geocoder) *LocationController {
	return &LocationController{geocoder: geocoder}
}

// GetLocation passes the LocationIQ reverse lookup through to the caller.
// GET /get-location?latitude=..&longitude=..
func (lc *LocationController) GetLocation(c *gin.Context) {
	latitude := strings.TrimSpace(c.Query("latitude"))
	longitude := strings.TrimSpace(c.Query("longitude"))
	if latitude == "" || longitude == "" {
		respondBadRequest(c, "Latitude and longitude are required")
		return
	}

	doc, err := lc.geocoder.Reverse(c.Request.Context(), latitude, longitude)
	if err != nil {
		var apiErr *geocoding.APIError
		switch {
		case errors.As(err, &apiErr):
			message := apiErr.Message
			if message == "" {
				message = "Location API error"
			}
			respondError(c, apiErr.StatusCode, message)
		case errors.Is(err, geocoding.ErrNoResponse):
			log.Printf("Location lookup failed: %v", err)
			respondError(c, http.StatusInternalServerError, "No response from location service")
		default:
			log.Printf("Location lookup failed: %v", err)
			respondError(c, http.StatusInternalServerError, "Unexpected server error")
		}
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}
