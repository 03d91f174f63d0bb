package chapters

import (
	"github.com/chapterprep/chapterprep/pkg/words"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers chapter routes on an authenticated group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, wordService *words.Service, extractor Extractor) {
	h := &handler{
		chapterService: NewService(db),
		wordService:    wordService,
		extractor:      extractor,
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/extract", h.reextract)
	g.GET("/:id/words", h.listWords)
	g.POST("/:id/words", h.confirmWords)
}
