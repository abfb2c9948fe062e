package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(5, 100, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d should pass", i)
	}
}

func TestRateLimiter_BansOverSecondLimit(t *testing.T) {
	rl := NewRateLimiter(3, 100, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.IsBanned("1.2.3.4"))

	// Other IPs unaffected.
	assert.True(t, rl.Allow("5.6.7.8"))
	assert.False(t, rl.IsBanned("5.6.7.8"))
}

func TestRateLimiter_BanExpires(t *testing.T) {
	rl := NewRateLimiter(1, 100, 10*time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.IsBanned("1.2.3.4"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, rl.IsBanned("1.2.3.4"))
}

func TestOriginChecker_AllowAll(t *testing.T) {
	oc := NewOriginChecker([]string{"*"})

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "http://evil.example")
	assert.True(t, oc.Check(r))
}

func TestOriginChecker_Whitelist(t *testing.T) {
	oc := NewOriginChecker([]string{"https://jogo.example"})

	allowed := httptest.NewRequest(http.MethodGet, "/ws", nil)
	allowed.Header.Set("Origin", "https://JOGO.example")
	assert.True(t, oc.Check(allowed), "origin match is case-insensitive")

	denied := httptest.NewRequest(http.MethodGet, "/ws", nil)
	denied.Header.Set("Origin", "https://other.example")
	assert.False(t, oc.Check(denied))

	// Native clients send no Origin header.
	bare := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, oc.Check(bare))
}

func TestMessageRateLimiter(t *testing.T) {
	ml := NewMessageRateLimiter(4)

	for i := 0; i < 2; i++ {
		allowed, warning := ml.AllowMessage("c1")
		assert.True(t, allowed)
		assert.False(t, warning, "message %d", i)
	}

	// Past the warning threshold but under the cap.
	allowed, warning := ml.AllowMessage("c1")
	assert.True(t, allowed)
	assert.True(t, warning)

	allowed, _ = ml.AllowMessage("c1")
	assert.True(t, allowed)

	// Over the cap.
	allowed, warning = ml.AllowMessage("c1")
	assert.False(t, allowed)
	assert.True(t, warning)
	assert.Equal(t, 1, ml.GetWarningCount("c1"))

	ml.RemoveClient("c1")
	assert.Equal(t, 0, ml.GetWarningCount("c1"))
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "20.0.0.2")
	assert.Equal(t, "20.0.0.2", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "30.0.0.3, 20.0.0.2")
	assert.Equal(t, "30.0.0.3", GetClientIP(r))
}

func TestGenerateNickname(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := GenerateNickname()
		assert.NotEmpty(t, name)
		assert.Contains(t, name, " ")
	}
}
