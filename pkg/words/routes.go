package words

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers word routes on an authenticated group.
func RegisterRoutesWithGroup(g *echo.Group, wordService *Service) {
	h := &handler{
		wordService: wordService,
	}

	g.POST("/:id", h.update)
	g.DELETE("/:id", h.delete)
}
