// Package tts synthesizes speech through Google Cloud Text-to-Speech and
// keeps every result on disk.
package tts

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"aasaasi/internal/logger"
)

const defaultEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

var ErrUnavailable = errors.New("speech synthesis is not configured")

type Client struct {
	cacheDir string
	audioDir string
	apiKey   string
	endpoint string
	log      *logger.Logger

	mu         sync.Mutex
	httpClient *http.Client
}

type Options struct {
	CacheDir string
	// AudioDir holds pre-recorded files that take precedence over synthesis.
	AudioDir string
	APIKey   string
	Endpoint string
}

func NewClient(opts Options, log *logger.Logger) (*Client, error) {
	if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tts cache dir: %w", err)
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		cacheDir:   opts.CacheDir,
		audioDir:   opts.AudioDir,
		apiKey:     opts.APIKey,
		endpoint:   endpoint,
		log:        log,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// CacheKey names the audio file for a request.
func CacheKey(text, lang string, slow bool) string {
	h := md5.Sum([]byte(lang + ":" + strconv.FormatBool(slow) + ":" + text))
	return hex.EncodeToString(h[:])
}

// Audio returns MP3 bytes for text, from a pre-recorded override, the
// cache, or a fresh synthesis in that order.
func (c *Client) Audio(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	key := CacheKey(text, lang, slow)

	if c.audioDir != "" {
		if data, err := os.ReadFile(filepath.Join(c.audioDir, key+".mp3")); err == nil {
			return data, nil
		}
	}

	cachePath := filepath.Join(c.cacheDir, key+".mp3")
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}
	if c.apiKey == "" {
		return nil, ErrUnavailable
	}

	data, err := c.synthesize(ctx, text, lang, slow)
	if err != nil {
		return nil, err
	}

	tmp := cachePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err == nil {
		if err := os.Rename(tmp, cachePath); err != nil {
			c.log.Warn("tts cache rename failed", "key", key, "error", err)
		}
	} else {
		c.log.Warn("tts cache write failed", "key", key, "error", err)
	}
	return data, nil
}

func (c *Client) synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	rate := 1.0
	if slow {
		rate = 0.75
	}
	reqBody := map[string]any{
		"input": map[string]string{"text": text},
		"voice": map[string]any{
			"languageCode": languageCode(lang),
			"ssmlGender":   "FEMALE",
		},
		"audioConfig": map[string]any{
			"audioEncoding": "MP3",
			"speakingRate":  rate,
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API error %d: %s", resp.StatusCode, string(raw))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return audio, nil
}

func languageCode(lang string) string {
	switch lang {
	case "", "en":
		return "en-US"
	case "so":
		return "so-SO"
	}
	return lang
}
