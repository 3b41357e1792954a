package client

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/kartik0x00/Budget-Formula/internal/budget"
	"github.com/kartik0x00/Budget-Formula/internal/config"
	"github.com/kartik0x00/Budget-Formula/internal/database"
	"github.com/kartik0x00/Budget-Formula/internal/router"
	"github.com/kartik0x00/Budget-Formula/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer runs the real router against an in-memory store, so
// these tests cover the whole client/server round trip.
func startTestServer(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Init(config.DatabaseConfig{
		Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Auth.Pin = "1234"
	cfg.Auth.UserName = "Kartik Upadhyay"
	cfg.CORS.Origin = "http://localhost:5173"

	srv := httptest.NewServer(router.SetupRouter(cfg, db))
	t.Cleanup(srv.Close)

	return New(srv.URL)
}

func login(t *testing.T, c *Client) {
	t.Helper()
	_, err := c.Login(context.Background(), "1234", "Kartik Upadhyay")
	require.NoError(t, err)
}

func TestClientLogin(t *testing.T) {
	c := startTestServer(t)
	ctx := context.Background()

	user, err := c.Login(ctx, "1234", "Kartik Upadhyay")
	require.NoError(t, err)
	assert.Equal(t, "Kartik Upadhyay", user.Name)
	assert.Equal(t, "1234:Kartik Upadhyay", c.Token())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Kartik Upadhyay", me.Name)
}

func TestClientLoginWrongPin(t *testing.T) {
	c := startTestServer(t)

	_, err := c.Login(context.Background(), "9999", "Kartik Upadhyay")
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Empty(t, c.Token())
}

func TestClientVerifyToken(t *testing.T) {
	c := startTestServer(t)
	ctx := context.Background()

	assert.True(t, c.VerifyToken(ctx, "1234:Kartik Upadhyay"))
	assert.False(t, c.VerifyToken(ctx, "9999:Kartik Upadhyay"))
	assert.False(t, c.VerifyToken(ctx, "no-separator"))
}

func TestClientDiscardsTokenOn401(t *testing.T) {
	c := startTestServer(t)
	ctx := context.Background()

	c.SetToken("1234:Nobody Else")
	_, err := c.GetSummary(ctx, 3, 2026)
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Empty(t, c.Token(), "a rejected token must be dropped")
}

func TestClientEntryLifecycle(t *testing.T) {
	c := startTestServer(t)
	ctx := context.Background()
	login(t, c)

	entry, err := c.CreateEntry(ctx, budget.EntryInput{
		Date:      "2026-03-05",
		Income:    int64p(50000),
		FixedPays: int64p(15000),
	})
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, 3, entry.Month)
	assert.Equal(t, 2026, entry.Year)

	got, err := c.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	summary, err := c.GetSummary(ctx, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(35000), summary.Left)

	updated, err := c.UpdateEntry(ctx, entry.ID, budget.EntryInput{Expenses: int64p(20000)})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), updated.Expenses)

	periods, err := c.AvailableDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []budget.Period{{Year: 2026, Month: 3}}, periods)

	require.NoError(t, c.DeleteEntry(ctx, entry.ID))

	err = c.DeleteEntry(ctx, entry.ID)
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

// TestClientCacheAgreesWithServer runs the same mutations through the
// server and the local cache and checks both report the same totals.
func TestClientCacheAgreesWithServer(t *testing.T) {
	c := startTestServer(t)
	ctx := context.Background()
	login(t, c)

	cache := NewBudgetCache()
	cache.SetPeriod(3, 2026)
	summary, err := c.GetSummary(ctx, 3, 2026)
	require.NoError(t, err)
	cache.Load(summary)

	entry, err := c.CreateEntry(ctx, budget.EntryInput{
		Date:      "2026-03-05",
		Income:    int64p(50000),
		FixedPays: int64p(15000),
	})
	require.NoError(t, err)
	cache.ApplyCreate(*entry)
	assert.Equal(t, int64(35000), cache.Left())

	updated, err := c.UpdateEntry(ctx, entry.ID, budget.EntryInput{Expenses: int64p(20000)})
	require.NoError(t, err)
	cache.ApplyUpdate(*updated)
	assert.Equal(t, int64(15000), cache.Left())

	fresh, err := c.GetSummary(ctx, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, fresh.Totals, cache.Totals())
	assert.Equal(t, fresh.Left, cache.Left())

	require.NoError(t, c.DeleteEntry(ctx, entry.ID))
	cache.ApplyDelete(entry.ID)
	assert.Zero(t, cache.Left())
	assert.Zero(t, cache.Len())
}

func int64p(v int64) *int64 { return &v }
