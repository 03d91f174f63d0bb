package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/chapterprep/chapterprep/pkg/auth"
	"github.com/chapterprep/chapterprep/pkg/binder"
	"github.com/chapterprep/chapterprep/pkg/books"
	"github.com/chapterprep/chapterprep/pkg/chapters"
	"github.com/chapterprep/chapterprep/pkg/config"
	"github.com/chapterprep/chapterprep/pkg/database"
	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/chapterprep/chapterprep/pkg/gemini"
	"github.com/chapterprep/chapterprep/pkg/testutils"
	"github.com/chapterprep/chapterprep/pkg/users"
	"github.com/chapterprep/chapterprep/pkg/version"
	"github.com/chapterprep/chapterprep/pkg/vocabulary"
	"github.com/chapterprep/chapterprep/pkg/words"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

const appName = "ChapterPrep API"

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e, err := newEcho(cfg, db, gemini.New(gemini.OptionsFromConfig(cfg)))
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB, generator vocabulary.Generator) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	if cfg.DatabaseDebug {
		e.Use(queryLogging)
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderAccept},
	}))

	health.RegisterRoutes(e)
	e.GET("/", root)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenExpiry())
	if err != nil {
		return nil, err
	}
	authService := auth.NewService(users.NewService(db), tokens)
	authMiddleware := auth.NewMiddleware(authService)
	auth.RegisterRoutes(e, authService, authMiddleware)

	wordService := words.NewService(db)
	extractor := vocabulary.NewExtractor(generator)

	booksGroup := e.Group("/books", authMiddleware.Authenticate)
	books.RegisterRoutesWithGroup(booksGroup, db)

	chaptersGroup := e.Group("/chapters", authMiddleware.Authenticate)
	chapters.RegisterRoutesWithGroup(chaptersGroup, db, wordService, extractor)

	wordsGroup := e.Group("/words", authMiddleware.Authenticate)
	words.RegisterRoutesWithGroup(wordsGroup, wordService)

	if cfg.Environment == config.EnvironmentTest {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

// queryLogging flags every request context so the database debug hook logs
// the queries it runs.
func queryLogging(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		c.SetRequest(req.WithContext(database.WithLogging(req.Context())))
		return next(c)
	}
}

func root(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"app":     appName,
		"version": version.Version,
	}))
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
