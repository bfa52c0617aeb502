package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/library"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/persistence"
	"github.com/MrSnakeDoc/shelf/internal/store/memory"
)

type env struct {
	handler  http.Handler
	lib      *library.Store
	kv       *memory.Store
	trigger  chan struct{}
	shutdown chan struct{}
}

func newEnv(t *testing.T, strict bool) env {
	t.Helper()
	log := logger.NewNop()
	kv := memory.New()
	adapter := persistence.NewAdapter(kv, log)
	lib := library.Open(context.Background(), adapter, library.WithStrict(strict))
	trigger := make(chan struct{}, 1)
	shutdown := make(chan struct{})

	d := deps.Deps{
		Logger:       log,
		StartTime:    time.Now(),
		Version:      "test",
		TimeNow:      time.Now,
		RateBurst:    1000,
		RatePerMin:   1000,
		Library:      lib,
		Adapter:      adapter,
		Storage:      "memory",
		FlushTrigger: trigger,
		Shutdown:     shutdown,
	}
	return env{handler: httpserver.NewRouter(d), lib: lib, kv: kv, trigger: trigger, shutdown: shutdown}
}

func (e env) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

type mutationBody struct {
	Status    string      `json:"status"`
	Persisted bool        `json:"persisted"`
	Book      domain.Book `json:"book"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestListBooks(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodGet, "/api/books", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
		Books []struct {
			ID      int64           `json:"id"`
			Kind    string          `json:"kind"`
			Label   string          `json:"sectionLabel"`
			Extra   json.RawMessage `json:"extra"`
			Percent *int            `json:"percent"`
			Hidden  *bool           `json:"hidden"`
		} `json:"books"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 3, body.Count)

	first := body.Books[0]
	assert.Equal(t, "progress", first.Kind)
	assert.Equal(t, "Leyendo Ahora", first.Label)
	assert.JSONEq(t, `{"current":180,"total":432}`, string(first.Extra))
	require.NotNil(t, first.Percent)
	assert.Equal(t, 42, *first.Percent)
	assert.Nil(t, first.Hidden)

	assert.Equal(t, "none", body.Books[1].Kind)
	assert.JSONEq(t, `{}`, string(body.Books[1].Extra))
}

func TestListBooksQuery(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodGet, "/api/books?q=dune", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Count int `json:"count"`
	}](t, rec)
	assert.Equal(t, 1, body.Count)

	rec = e.do(t, http.MethodGet, "/api/books?q=dune&view=all", "")
	all := decode[struct {
		Books []struct {
			ID     int64 `json:"id"`
			Hidden *bool `json:"hidden"`
		} `json:"books"`
	}](t, rec)
	require.Len(t, all.Books, 3)
	for _, b := range all.Books {
		require.NotNil(t, b.Hidden)
		assert.Equal(t, b.ID != 3, *b.Hidden, "book %d", b.ID)
	}

	rec = e.do(t, http.MethodGet, "/api/books?section=nowhere", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetBook(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodGet, "/api/books/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Elantris", decode[domain.Book](t, rec).Title)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/books/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/api/books/abc", "").Code)
}

func TestAddBook(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodPost, "/api/books",
		`{"title":"Mistborn","author":"Brandon Sanderson","section":"leyendo-ahora","totalPages":541}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode[mutationBody](t, rec)
	assert.Equal(t, "applied", body.Status)
	assert.True(t, body.Persisted)
	assert.Equal(t, domain.SectionReading, body.Book.Section)
	assert.Equal(t, 4, e.lib.Count())

	rec = e.do(t, http.MethodPost, "/api/books", `{"title":"x","section":"attic"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unknown_section", decode[map[string]string](t, rec)["status"])

	rec = e.do(t, http.MethodPost, "/api/books", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeedScenarioOverHTTP(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodPost, "/api/books/2/progress", `{"currentPage":9999}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[mutationBody](t, rec)
	assert.Equal(t, "clamped", body.Status)
	assert.Equal(t, 622, body.Book.CurrentPage)

	rec = e.do(t, http.MethodPost, "/api/books/2/move", `{"section":"libros-terminados"}`)
	body = decode[mutationBody](t, rec)
	assert.Equal(t, 0, body.Book.CurrentPage)

	rec = e.do(t, http.MethodPost, "/api/books/2/rate", `{"stars":4}`)
	body = decode[mutationBody](t, rec)
	assert.Equal(t, 4, body.Book.Rating)

	rec = e.do(t, http.MethodPost, "/api/books/2/move", `{"section":"lista-deseos"}`)
	body = decode[mutationBody](t, rec)
	assert.Equal(t, 0, body.Book.Rating)

	rec = e.do(t, http.MethodPost, "/api/books/2/move", `{"section":"lista-deseos"}`)
	assert.Equal(t, "noop", decode[mutationBody](t, rec).Status)
}

func TestStrictErrors(t *testing.T) {
	e := newEnv(t, true)

	rec := e.do(t, http.MethodPost, "/api/books/1/rate", `{"stars":3}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/books/1/rate", `{"stars":7}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/books/1/progress", `{"currentPage":-1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDetailsNotesCover(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodPut, "/api/books/1/details", `{"currentPage":200,"notes":"chapter 9"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[mutationBody](t, rec)
	assert.Equal(t, 200, body.Book.CurrentPage)
	assert.Equal(t, "chapter 9", body.Book.Notes)

	rec = e.do(t, http.MethodPut, "/api/books/1/notes", `{"notes":""}`)
	assert.Equal(t, "", decode[mutationBody](t, rec).Book.Notes)

	rec = e.do(t, http.MethodPut, "/api/books/1/cover", `{"cover":" covers/c.jpg "}`)
	assert.Equal(t, "covers/c.jpg", decode[mutationBody](t, rec).Book.Cover)

	rec = e.do(t, http.MethodPut, "/api/books/77/cover", `{"cover":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[mutationBody](t, rec).Status)
}

func TestDeleteBook(t *testing.T) {
	e := newEnv(t, false)

	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, "/api/books/3", "").Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, "/api/books/3", "").Code)
	assert.Equal(t, 2, e.lib.Count())
}

func TestDeleteWhileStorageDown(t *testing.T) {
	e := newEnv(t, false)
	e.kv.SetFailure(errors.New("disk full"))

	rec := e.do(t, http.MethodDelete, "/api/books/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[mutationBody](t, rec).Persisted)

	rec = e.do(t, http.MethodGet, "/infra", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "degraded", decode[map[string]any](t, rec)["mode"])
}

func TestSections(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodGet, "/api/sections", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sections := decode[[]struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Kind  string `json:"kind"`
		Count int    `json:"count"`
	}](t, rec)
	require.Len(t, sections, 4)
	assert.Equal(t, "leyendo-ahora", sections[0].ID)
	assert.Equal(t, 2, sections[0].Count)
	assert.Equal(t, "rating", sections[2].Kind)

	rec = e.do(t, http.MethodGet, "/api/sections/libros-terminados/targets", "")
	targets := decode[[]struct {
		ID string `json:"id"`
	}](t, rec)
	require.Len(t, targets, 3)
	for _, tg := range targets {
		assert.NotEqual(t, "libros-terminados", tg.ID)
	}

	assert.Equal(t, http.StatusUnprocessableEntity,
		e.do(t, http.MethodGet, "/api/sections/attic/targets", "").Code)
}

func TestTheme(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodGet, "/api/theme", "")
	assert.Equal(t, "light", decode[map[string]string](t, rec)["theme"])

	rec = e.do(t, http.MethodPost, "/api/theme/toggle", "")
	assert.Equal(t, "dark", decode[map[string]string](t, rec)["theme"])

	rec = e.do(t, http.MethodPut, "/api/theme", `{"theme":"LIGHT"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", decode[map[string]string](t, rec)["theme"])

	rec = e.do(t, http.MethodPut, "/api/theme", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestFlushEndpoint(t *testing.T) {
	e := newEnv(t, false)

	assert.Equal(t, http.StatusAccepted, e.do(t, http.MethodPost, "/api/flush", "").Code)
	// Nobody drains the trigger in this test, so the second request is refused.
	assert.Equal(t, http.StatusTooManyRequests, e.do(t, http.MethodPost, "/api/flush", "").Code)
	<-e.trigger
}

func TestHealthAndReadiness(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(3), health["books"])

	rec = e.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/infra", "")
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["mode"])
}

func TestEventsStream(t *testing.T) {
	e := newEnv(t, false)
	srv := httptest.NewServer(e.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// The subscription exists once headers are flushed.
	e.lib.UpdateNotes(context.Background(), 1, "streamed")

	buf := make([]byte, 512)
	var got strings.Builder
	for !strings.Contains(got.String(), "\n\n") {
		n, err := resp.Body.Read(buf)
		require.NoError(t, err)
		got.Write(buf[:n])
	}
	assert.Contains(t, got.String(), "event: change")
	assert.Contains(t, got.String(), `"op":"notes"`)
}

func TestEventsStreamEndsOnShutdown(t *testing.T) {
	e := newEnv(t, false)
	srv := httptest.NewServer(e.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	close(e.shutdown)

	_, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NoError(t, ctx.Err(), "stream should end before the client gives up")
}
