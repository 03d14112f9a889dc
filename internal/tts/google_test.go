package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"aasaasi/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("hello", "en", false)
	assert.Len(t, a, 32)
	assert.Equal(t, a, CacheKey("hello", "en", false))
	assert.NotEqual(t, a, CacheKey("hello", "en", true))
	assert.NotEqual(t, a, CacheKey("hello", "so", false))
}

func TestAudio_SynthesizesOnceThenCaches(t *testing.T) {
	var hits int32
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString([]byte("mp3-bytes")),
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	c, err := NewClient(Options{CacheDir: dir, APIKey: "secret", Endpoint: srv.URL}, logger.Nop())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		data, err := c.Audio(context.Background(), "hello", "en", true)
		require.NoError(t, err)
		assert.Equal(t, []byte("mp3-bytes"), data)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	voice := body["voice"].(map[string]any)
	assert.Equal(t, "en-US", voice["languageCode"])
	audio := body["audioConfig"].(map[string]any)
	assert.Equal(t, 0.75, audio["speakingRate"])

	_, err = os.Stat(filepath.Join(dir, CacheKey("hello", "en", true)+".mp3"))
	assert.NoError(t, err)
}

func TestAudio_PrerecordedOverride(t *testing.T) {
	audioDir := t.TempDir()
	key := CacheKey("salaan", "so", false)
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, key+".mp3"), []byte("recorded"), 0o644))

	c, err := NewClient(Options{CacheDir: t.TempDir(), AudioDir: audioDir}, logger.Nop())
	require.NoError(t, err)

	data, err := c.Audio(context.Background(), "salaan", "so", false)
	require.NoError(t, err)
	assert.Equal(t, []byte("recorded"), data)
}

func TestAudio_NoKey(t *testing.T) {
	c, err := NewClient(Options{CacheDir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)

	_, err = c.Audio(context.Background(), "hello", "en", false)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAudio_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := NewClient(Options{CacheDir: t.TempDir(), APIKey: "k", Endpoint: srv.URL}, logger.Nop())
	require.NoError(t, err)

	_, err = c.Audio(context.Background(), "hello", "en", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
