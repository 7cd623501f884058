package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "persondir/internal/jwt_token"
	"persondir/internal/person/handler"
	"persondir/internal/person/service"
	"persondir/internal/person/store"
)

const signingKey = "test-signing-key"

type testEnv struct {
	server *httptest.Server
	jwt    *jwttoken.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtService := jwttoken.NewJWTService(signingKey, "persondir", "persondir-api")
	svc := service.NewPersonService(store.NewInMemory())
	h := handler.NewHandler(slog.Default(), svc, jwttoken.NewJWTServiceAdapter(jwtService))

	r := chi.NewRouter()
	h.Register(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testEnv{server: server, jwt: jwtService}
}

func (e *testEnv) token(t *testing.T, subject string) string {
	t.Helper()
	token, err := e.jwt.GenerateAccessToken(subject, time.Minute)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (e *testEnv) register(t *testing.T, name, surname string) handler.PersonResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/persons", e.token(t, "ops@directory"), handler.RegisterPersonRequest{
		Name:    name,
		Surname: surname,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[handler.PersonResponse](t, resp)
}

func TestRegisterPerson(t *testing.T) {
	t.Run("creates a person", func(t *testing.T) {
		env := newTestEnv(t)

		created := env.register(t, "john", "doe")
		assert.Equal(t, "john", created.Name)
		assert.Equal(t, "doe", created.Surname)
		assert.GreaterOrEqual(t, created.ID, int64(1))
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("rejects an invalid payload with 400", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodPost, "/persons", env.token(t, "ops@directory"), handler.RegisterPersonRequest{
			Name:    "",
			Surname: "doe",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decode[map[string]string](t, resp)
		assert.Equal(t, "validation", body["error"])
		assert.Contains(t, body["error_description"], "name")
	})

	t.Run("rejects an over-long surname with 400", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodPost, "/persons", env.token(t, "ops@directory"), handler.RegisterPersonRequest{
			Name:    "john",
			Surname: strings.Repeat("a", 21),
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects a request without a token", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodPost, "/persons", "", handler.RegisterPersonRequest{
			Name:    "john",
			Surname: "doe",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a token signed with a different key", func(t *testing.T) {
		env := newTestEnv(t)

		forged, err := jwttoken.NewJWTService("other-key", "persondir", "persondir-api").
			GenerateAccessToken("intruder", time.Minute)
		require.NoError(t, err)

		resp := env.do(t, http.MethodPost, "/persons", forged, handler.RegisterPersonRequest{
			Name:    "john",
			Surname: "doe",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		env := newTestEnv(t)

		req, err := http.NewRequest(http.MethodPost, env.server.URL+"/persons", strings.NewReader("{not json"))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+env.token(t, "ops@directory"))

		resp, err := env.server.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPerson(t *testing.T) {
	t.Run("returns an existing person without auth", func(t *testing.T) {
		env := newTestEnv(t)
		created := env.register(t, "john", "doe")

		resp := env.do(t, http.MethodGet, fmt.Sprintf("/persons/%d", created.ID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		found := decode[handler.PersonResponse](t, resp)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "john", found.Name)
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodGet, "/persons/999", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("returns 400 for a non-integer id", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodGet, "/persons/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decode[map[string]string](t, resp)
		assert.Equal(t, "invalid_input", body["error"])
	})

	t.Run("returns 400 for a negative id", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodGet, "/persons/-1", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListPersons(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "john", "doe")
	env.register(t, "jane", "smith")

	resp := env.do(t, http.MethodGet, "/persons", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	persons := decode[[]handler.PersonResponse](t, resp)
	require.Len(t, persons, 2)
	assert.Less(t, persons[0].ID, persons[1].ID)
}

func TestUpdatePerson(t *testing.T) {
	t.Run("renames an existing person", func(t *testing.T) {
		env := newTestEnv(t)
		created := env.register(t, "john", "doe")

		resp := env.do(t, http.MethodPut, fmt.Sprintf("/persons/%d", created.ID),
			env.token(t, "ops@directory"), handler.UpdatePersonRequest{Name: "jane", Surname: "smith"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		updated := decode[handler.PersonResponse](t, resp)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "jane", updated.Name)
		assert.Equal(t, "smith", updated.Surname)
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodPut, "/persons/999",
			env.token(t, "ops@directory"), handler.UpdatePersonRequest{Name: "jane", Surname: "smith"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("requires a token", func(t *testing.T) {
		env := newTestEnv(t)
		created := env.register(t, "john", "doe")

		resp := env.do(t, http.MethodPut, fmt.Sprintf("/persons/%d", created.ID),
			"", handler.UpdatePersonRequest{Name: "jane", Surname: "smith"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDeletePerson(t *testing.T) {
	t.Run("removes a person", func(t *testing.T) {
		env := newTestEnv(t)
		created := env.register(t, "john", "doe")

		resp := env.do(t, http.MethodDelete, fmt.Sprintf("/persons/%d", created.ID),
			env.token(t, "ops@directory"), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = env.do(t, http.MethodGet, fmt.Sprintf("/persons/%d", created.ID), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.do(t, http.MethodDelete, "/persons/999", env.token(t, "ops@directory"), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
