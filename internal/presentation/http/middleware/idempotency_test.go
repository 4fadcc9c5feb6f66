package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/reception-api/internal/infrastructure/repository"
)

func newIdempotencyRouter(userID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/submit", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}, IdempotencyRequired(IdempotencyConfig{
		Repo: repository.NewMemoryIdempotencyRepository(),
	}), handler)
	return router
}

func postSubmit(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	calls := 0
	router := newIdempotencyRouter(uuid.New(), func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"success": true})
	})

	w := postSubmit(router, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without a key", w.Code)
	}
	if calls != 0 {
		t.Errorf("handler calls = %d, want 0", calls)
	}
}

func TestIdempotencyRequiredReplaysSuccess(t *testing.T) {
	calls := 0
	router := newIdempotencyRouter(uuid.New(), func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"success": true, "attempt": calls})
	})

	first := postSubmit(router, "k1")
	if first.Code != 201 {
		t.Fatalf("first status = %d, want 201", first.Code)
	}

	second := postSubmit(router, "k1")
	if second.Code != 201 {
		t.Fatalf("second status = %d, want cached 201", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Errorf("replay header = %q, want true", second.Header().Get("X-Idempotency-Replayed"))
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
}

func TestIdempotencyRequiredDoesNotCacheFailures(t *testing.T) {
	calls := 0
	router := newIdempotencyRouter(uuid.New(), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusBadGateway, gin.H{"success": false})
			return
		}
		c.JSON(201, gin.H{"success": true})
	})

	first := postSubmit(router, "k1")
	if first.Code != http.StatusBadGateway {
		t.Fatalf("first status = %d, want 502", first.Code)
	}

	// A failed attempt is not cached, so the retry re-executes.
	second := postSubmit(router, "k1")
	if second.Code != 201 {
		t.Fatalf("retry status = %d, want 201", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") == "true" {
		t.Error("retry after a failure must not be a replay")
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestIdempotencyKeysAreScopedPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0
	repo := repository.NewMemoryIdempotencyRepository()
	router := gin.New()
	router.POST("/submit", func(c *gin.Context) {
		c.Set("user_id", uuid.MustParse(c.GetHeader("X-Test-User")))
		c.Next()
	}, IdempotencyRequired(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"success": true})
	})

	userA := uuid.New().String()
	userB := uuid.New().String()
	for _, user := range []string{userA, userB} {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set(IdempotencyKeyHeader, "shared")
		req.Header.Set("X-Test-User", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != 201 {
			t.Fatalf("user %s status = %d, want 201", user, w.Code)
		}
		if w.Header().Get("X-Idempotency-Replayed") == "true" {
			t.Errorf("user %s must not replay another user's key", user)
		}
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}
