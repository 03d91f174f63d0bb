package books

import (
	"net/http"
	"strconv"

	"github.com/chapterprep/chapterprep/pkg/auth"
	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		UserID: user.ID,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{
		"books": books,
		"total": total,
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.CreateBook(ctx, CreateBookOptions{
		UserID:   user.ID,
		Title:    params.Title,
		Author:   params.Author,
		Language: params.Language,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.Forbidden("Accessing this book")
	}

	book, err := h.bookService.RetrieveBook(ctx, id, user.ID)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.Forbidden("Deleting this book")
	}

	if err := h.bookService.DeleteBook(ctx, id, user.ID); err != nil {
		return err
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
