package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"aasaasi/internal/llm"
	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/store"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type IdiomService struct {
	content store.ContentStore
	ai      llm.Provider
	timeout time.Duration
	log     *logger.Logger
	rec     recorder
	md      goldmark.Markdown
	now     func() time.Time
}

func NewIdiomService(s store.Store, ai llm.Provider, timeout time.Duration, log *logger.Logger) *IdiomService {
	return &IdiomService{
		content: s,
		ai:      ai,
		timeout: timeout,
		log:     log,
		rec:     recorder{events: s, log: log, now: time.Now},
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		now:     time.Now,
	}
}

// WeekIndex picks the idiom for an ISO week; every week of a year maps to
// a distinct position modulo total.
func WeekIndex(year, week, total int) int {
	return (year*53 + week) % total
}

// Current returns the idiom of the week.
func (s *IdiomService) Current(ctx context.Context, sessionID string) (*models.Idiom, error) {
	idioms, err := s.content.Idioms(ctx)
	if err != nil {
		return nil, fmt.Errorf("load idioms: %w", err)
	}
	if len(idioms) == 0 {
		return nil, notFound("No idioms in database")
	}

	year, week := s.now().ISOWeek()
	out := idioms[WeekIndex(year, week, len(idioms))]
	out.WeekLabel = fmt.Sprintf("Week %d, %d", week, year)

	s.rec.record(ctx, sessionID, models.KindIdiomViewed, map[string]any{
		"idiom": out.Idiom,
		"week":  week,
		"year":  year,
	})
	return &out, nil
}

// Archive lists idioms newest first.
func (s *IdiomService) Archive(ctx context.Context, skip, limit int) ([]models.Idiom, error) {
	if skip < 0 {
		return nil, invalid("skip must be >= 0")
	}
	if limit < 1 || limit > 100 {
		return nil, invalid("limit must be between 1 and 100")
	}
	idioms, err := s.content.Idioms(ctx)
	if err != nil {
		return nil, fmt.Errorf("load idioms: %w", err)
	}

	out := []models.Idiom{}
	for i := len(idioms) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, idioms[i])
	}
	return out, nil
}

// Explanation is an AI explanation card in Markdown and rendered HTML.
type Explanation struct {
	Idiom       string `json:"idiom"`
	Explanation string `json:"explanation"`
	HTML        string `json:"html"`
}

func (s *IdiomService) Explain(ctx context.Context, idiom string) (*Explanation, error) {
	idiom = strings.TrimSpace(idiom)
	if len(idiom) < 2 {
		return nil, invalid("idiom must be at least 2 characters")
	}

	prompt := fmt.Sprintf(`Create a clean Markdown "AI Explanation" card for the idiom %q.

Use EXACTLY these headings and order (in English):
# %s
## Simple Explanation
<one short paragraph; very learner-friendly>

## Somali Translation
<best Somali equivalent>

## Example Sentences
1. <short example>
2. <short example>
3. <short example>

## Usage & Origin
<one short note about usage, nuance, or origin if relevant>

## Quick Pronunciation Hint
/<IPA if known>/ - Sounds like "<friendly hint>"

Rules:
- Do NOT wrap the response in code fences.
- Keep sentences short and clear.
- If IPA is uncertain, give an approximate hint anyway.`, idiom, titleCase(idiom))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.ai.Generate(ctx, llm.UserPrompt(TutorSystemPrompt, prompt, 0.3))
	if err != nil {
		return nil, err
	}

	html, err := renderMarkdown(s.md, resp.Text)
	if err != nil {
		s.log.Warn("markdown render failed", "idiom", idiom, "error", err)
	}
	return &Explanation{Idiom: idiom, Explanation: resp.Text, HTML: html}, nil
}

func renderMarkdown(md goldmark.Markdown, src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
