package books

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/chapterprep/chapterprep/pkg/auth"
	"github.com/chapterprep/chapterprep/pkg/binder"
	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, user *models.User, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	c.Set(auth.ContextKeyUser, user)
	return c, rr
}

func TestHandler_CreateAndList(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	h := &handler{bookService: NewService(db)}
	bob := createTestUser(t, db, "bob")

	c, rr := newTestContext(t, bob, http.MethodPost, "/books", `{"title":"  Candide  "}`)
	require.NoError(t, h.create(c))
	assert.Equal(t, http.StatusCreated, rr.Code)

	var book models.Book
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &book))
	assert.Equal(t, "Candide", book.Title)
	assert.Equal(t, models.LanguageFrench, book.Language)
	assert.Nil(t, book.Author)

	c, rr = newTestContext(t, bob, http.MethodGet, "/books", "")
	require.NoError(t, h.list(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Books []models.Book `json:"books"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Books, 1)
	assert.Equal(t, book.ID, body.Books[0].ID)
}

func TestHandler_Create_InvalidLanguage(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	h := &handler{bookService: NewService(db)}
	bob := createTestUser(t, db, "bob")

	c, _ := newTestContext(t, bob, http.MethodPost, "/books", `{"title":"Candide","language":"pt"}`)
	err := h.create(c)

	var e *errcodes.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "validation_error", e.Code)
}

func TestHandler_RetrieveAndDelete_Forbidden(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	h := &handler{bookService: svc}
	bob := createTestUser(t, db, "bob")
	eve := createTestUser(t, db, "eve")

	c, rr := newTestContext(t, bob, http.MethodPost, "/books", `{"title":"Candide"}`)
	require.NoError(t, h.create(c))
	var book models.Book
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &book))

	for _, id := range []string{strconv.Itoa(book.ID), "9999", "abc"} {
		c, _ := newTestContext(t, eve, http.MethodGet, "/books/"+id, "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		err := h.retrieve(c)
		assert.True(t, errcodes.IsCode(err, "forbidden"), id)

		c, _ = newTestContext(t, eve, http.MethodDelete, "/books/"+id, "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		err = h.delete(c)
		assert.True(t, errcodes.IsCode(err, "forbidden"), id)
	}

	c, rr = newTestContext(t, bob, http.MethodDelete, "/books/"+strconv.Itoa(book.ID), "")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(book.ID))
	require.NoError(t, h.delete(c))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
