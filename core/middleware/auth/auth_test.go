package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"race-admin/core/models"
	"race-admin/core/policy"
	"race-admin/core/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	session.Store
}

func (failingStore) Get(context.Context, string) (*policy.Principal, error) {
	return nil, errors.New("redis down")
}

func setupApp(store session.Store) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{Sessions: store, Public: []string{"/login", "/health"}}))
	handler := func(c *fiber.Ctx) error {
		p, ok := Principal(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(p.Account)
	}
	app.Get("/login", handler)
	app.Get("/get_user", handler)
	return app
}

func TestNew(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	token, err := store.Create(context.Background(), policy.Principal{Account: "s01", Identity: models.KindStudent, RoleID: 3})
	require.NoError(t, err)
	app := setupApp(store)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"Public path", "/login", "", 200},
		{"Missing token", "/get_user", "", 401},
		{"Wrong scheme", "/get_user", "Basic abc", 401},
		{"Unknown token", "/get_user", "Bearer nope", 401},
		{"Valid token", "/get_user", "Bearer " + token, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestNew_StoreFailure(t *testing.T) {
	app := setupApp(failingStore{})
	req := httptest.NewRequest("GET", "/get_user", nil)
	req.Header.Set("Authorization", "Bearer abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
