package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/cache"
	"auction-engine/internal/config"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/ratelimit"
	"auction-engine/internal/server"
	"auction-engine/internal/store"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestStack holds the wired components backing a test router so
// individual tests can reach below the HTTP boundary when needed.
type TestStack struct {
	Router *gin.Engine
	Store  *store.GormStore
}

// SetupTestStack wires the full bidding stack against a fresh in-memory
// database, with notification and cache layers stubbed out.
func SetupTestStack(t *testing.T) *TestStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", utils.GenerateID())
	db, err := store.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)

	gormStore := store.NewGormStore(db, 3)
	limiter := ratelimit.NewLimiter(gormStore, config.RateLimitConfig{
		BidLimit:    10,
		BidWindow:   60 * time.Second,
		LoginLimit:  5,
		LoginWindow: 15 * time.Minute,
	})
	service := bidding.NewBiddingService(gormStore, limiter, notify.NewNoopNotifier(), cache.NewNoopInvalidator())
	router := server.SetupRouter(service, int(limiter.BidRetryAfter().Seconds()))

	return &TestStack{Router: router, Store: gormStore}
}

// SetupTestStackWithListings seeds the stack with listings before returning it.
func SetupTestStackWithListings(t *testing.T, listings ...model.Listing) *TestStack {
	t.Helper()
	stack := SetupTestStack(t)
	for _, listing := range listings {
		require.NoError(t, stack.Store.CreateListing(context.Background(), listing))
	}
	return stack
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, userID string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}
