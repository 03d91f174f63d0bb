package chapters

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chapterprep/chapterprep/pkg/auth"
	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/chapterprep/chapterprep/pkg/vocabulary"
	"github.com/chapterprep/chapterprep/pkg/words"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// Extractor produces word candidates for a chapter.
type Extractor interface {
	Extract(ctx context.Context, params vocabulary.PromptParams) ([]vocabulary.Candidate, error)
}

type handler struct {
	chapterService *Service
	wordService    *words.Service
	extractor      Extractor
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListChaptersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	chapters, total, err := h.chapterService.ListChaptersWithTotal(ctx, ListChaptersOptions{
		UserID: user.ID,
		Title:  params.Title,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{
		"chapters": chapters,
		"total":    total,
	}))
}

// create stores the chapter, then extracts words from it. The chapter is
// kept when extraction fails.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateChapterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	chapter, err := h.chapterService.CreateChapter(ctx, CreateChapterOptions{
		UserID:          user.ID,
		Title:           params.Title,
		ChapterNumber:   params.ChapterNumber,
		Text:            params.Text,
		TargetLanguage:  params.TargetLanguage,
		Level:           params.Level,
		TranslationMode: params.TranslationMode,
		WordsToExtract:  params.WordsToExtract,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	candidates, err := h.extract(ctx, chapter)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, echo.Map{
		"chapter": chapter,
		"words":   candidates,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	chapter, err := h.ownedChapter(c, "Accessing this chapter")
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, chapter))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	chapter, err := h.ownedChapter(c, "Deleting this chapter")
	if err != nil {
		return err
	}

	if err := h.chapterService.DeleteChapter(ctx, chapter.ID); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// reextract runs extraction again with the chapter's stored parameters.
func (h *handler) reextract(c echo.Context) error {
	ctx := c.Request().Context()

	chapter, err := h.ownedChapter(c, "Accessing this chapter")
	if err != nil {
		return err
	}

	candidates, err := h.extract(ctx, chapter)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{
		"chapter": chapter,
		"words":   candidates,
	}))
}

func (h *handler) confirmWords(c echo.Context) error {
	ctx := c.Request().Context()

	chapter, err := h.ownedChapter(c, "Accessing this chapter")
	if err != nil {
		return err
	}

	params := ConfirmWordsPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	err = h.wordService.CreateWords(ctx, words.CreateWordsOptions{
		ChapterID: chapter.ID,
		UserID:    chapter.UserID,
		Words:     params.Words,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	stored, err := h.wordService.ListWords(ctx, chapter.ID, chapter.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, echo.Map{
		"words": stored,
	}))
}

func (h *handler) listWords(c echo.Context) error {
	ctx := c.Request().Context()

	chapter, err := h.ownedChapter(c, "Accessing this chapter")
	if err != nil {
		return err
	}

	stored, err := h.wordService.ListWords(ctx, chapter.ID, chapter.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{
		"words": stored,
	}))
}

// ownedChapter resolves the :id parameter to a chapter of the current user.
// Unparseable, absent and foreign ids all fail with the same Forbidden.
func (h *handler) ownedChapter(c echo.Context, action string) (*models.Chapter, error) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errcodes.Forbidden(action)
	}

	return h.chapterService.RetrieveChapter(c.Request().Context(), id, user.ID, action)
}

func (h *handler) extract(ctx context.Context, chapter *models.Chapter) ([]vocabulary.Candidate, error) {
	candidates, err := h.extractor.Extract(ctx, PromptParams(chapter))
	if err != nil {
		var e *errcodes.Error
		category := "internal"
		if errors.As(err, &e) {
			category = e.Code
		}
		logger.FromContext(ctx).Warn("vocabulary extraction failed", logger.Data{
			"chapter_id": chapter.ID,
			"category":   category,
		})
		return nil, err
	}
	return candidates, nil
}
