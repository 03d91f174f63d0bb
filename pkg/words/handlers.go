package words

import (
	"net/http"
	"strconv"

	"github.com/chapterprep/chapterprep/pkg/auth"
	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	wordService *Service
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.Forbidden("Updating this word")
	}

	word, err := h.wordService.RetrieveWord(ctx, id, user.ID, "Updating this word")
	if err != nil {
		return err
	}

	params := UpdateWordPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateWordOptions{}
	if word.Status != params.Status {
		word.Status = params.Status
		opts.Columns = append(opts.Columns, "status")
	}

	if err := h.wordService.UpdateWord(ctx, word, opts); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, word))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.Forbidden("Deleting this word")
	}

	if _, err := h.wordService.RetrieveWord(ctx, id, user.ID, "Deleting this word"); err != nil {
		return err
	}

	if err := h.wordService.DeleteWord(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
