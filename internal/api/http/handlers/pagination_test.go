package handlers

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageFor(t *testing.T, query string) (limit, offset int) {
	t.Helper()
	app := fiber.New()
	app.Get("/page", func(c *fiber.Ctx) error {
		l, o := parsePage(c)
		return c.SendString(fmt.Sprintf("%d %d", l, o))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/page"+query, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_, err = fmt.Sscanf(string(raw), "%d %d", &limit, &offset)
	require.NoError(t, err)
	return limit, offset
}

func TestParsePage(t *testing.T) {
	limit, offset := pageFor(t, "")
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pageFor(t, "?page=3&page_size=10")
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)
}

func TestParsePage_ClampsPageSize(t *testing.T) {
	limit, _ := pageFor(t, "?page_size=100000")
	assert.Equal(t, maxPageSize, limit)
}

func TestParsePage_RejectsNonPositiveValues(t *testing.T) {
	limit, offset := pageFor(t, "?page=-2&page_size=0")
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
}
