package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aasaasi/internal/llm"
	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/store"
)

// TutorSystemPrompt sets the voice of every AI answer: a Markdown card by
// default, strict JSON only when the learner asks for it.
const TutorSystemPrompt = `You are Aasaasi, a friendly bilingual lexicographer for Somali learners of English.

GENERAL STYLE:
- Be concise, accurate, and helpful to learners.
- Prefer simple, learner-friendly language.
- When providing Somali, use clear standard Somali.

DUAL RESPONSE MODES:

(1) MARKDOWN CARD (DEFAULT)
If the user is asking about a single word or concept without explicitly requesting JSON,
produce a clean Markdown "AI Explanation" card with the following sections and titles:

# {Headword Capitalized}
## Simple Explanation
<1-2 sentences; very simple definition.>

## Somali Translation
<single best Somali translation for the sense being explained.>

## Example Sentences
1. <short sentence>
2. <short sentence>
3. <short sentence>

## Common Collocations
- <collocation 1>
- <collocation 2>
- <collocation 3>

## Quick Pronunciation Hint
/<IPA if known>/ - Sounds like "<friendly hint>"

Rules:
- Use exactly those section headings (EN).
- Do NOT wrap the whole thing in code fences.
- Keep lists short and useful.

(2) STRICT JSON (ONLY WHEN EXPLICITLY REQUESTED)
If the user explicitly asks for JSON (e.g. "Reply with JSON only", "return JSON", or provides key names),
return STRICT JSON with only the keys they requested.
No prefixes, no suffixes, no code fences, no Markdown.
Keep examples as an array of 1-3 strings.`

const maxMessageLen = 4000

type ChatReply struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversationId"`
}

type TutorService struct {
	convs   store.ConversationStore
	ai      llm.Provider
	timeout time.Duration
	log     *logger.Logger
	now     func() time.Time
}

func NewTutorService(convs store.ConversationStore, ai llm.Provider, timeout time.Duration, log *logger.Logger) *TutorService {
	return &TutorService{convs: convs, ai: ai, timeout: timeout, log: log, now: time.Now}
}

// Chat logs the learner's message, asks the model and logs the reply. The
// conversation id is the session id.
func (s *TutorService) Chat(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, invalid("message is required")
	}
	if len(message) > maxMessageLen {
		return nil, invalid(fmt.Sprintf("message must be at most %d characters", maxMessageLen))
	}

	user := models.ChatMessage{Role: string(llm.RoleUser), Content: message, TS: s.now().UTC()}
	if err := s.convs.AppendMessage(ctx, sessionID, user); err != nil {
		return nil, fmt.Errorf("log user message: %w", err)
	}

	aiCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.ai.Generate(aiCtx, llm.UserPrompt(TutorSystemPrompt, message, 0.2))
	if err != nil {
		return nil, err
	}
	reply := resp.Text
	if llm.WantsJSON(message) {
		reply = llm.ExtractJSONObject(reply)
	}

	assistant := models.ChatMessage{Role: string(llm.RoleAssistant), Content: reply, TS: s.now().UTC()}
	if err := s.convs.AppendMessage(ctx, sessionID, assistant); err != nil {
		s.log.Warn("failed to log assistant reply", "session", sessionID, "error", err)
	}
	return &ChatReply{Reply: reply, ConversationID: sessionID}, nil
}

// History returns the session's conversation, empty when there is none.
func (s *TutorService) History(ctx context.Context, sessionID string) (*models.Conversation, error) {
	conv, err := s.convs.Conversation(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.Conversation{SessionID: sessionID, ConversationID: sessionID, Messages: []models.ChatMessage{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	conv.ConversationID = sessionID
	if conv.Messages == nil {
		conv.Messages = []models.ChatMessage{}
	}
	return conv, nil
}
