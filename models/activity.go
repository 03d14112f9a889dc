package models

import "time"

// Activity kinds recorded for a session.
const (
	KindDictionarySearch = "dictionary_search"
	KindWordLearned      = "word_learned"
	KindQuizCompleted    = "quiz_completed"
	KindGrammarStudied   = "grammar_studied"
	KindTimeSpent        = "time_spent"
	KindPageView         = "page_view"
	KindIdiomViewed      = "idiom_of_week_viewed"
	KindWordSuggest      = "word_suggest"
)

// ActivityEvent is one learner action.
type ActivityEvent struct {
	SessionID string         `json:"sessionId" bson:"sessionId"`
	Kind      string         `json:"kind" bson:"kind"`
	Payload   map[string]any `json:"payload" bson:"payload"`
	TS        time.Time      `json:"ts" bson:"ts"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

// ChatMessage is one turn of an AI tutor conversation.
type ChatMessage struct {
	Role    string    `json:"role" bson:"role"`
	Content string    `json:"content" bson:"content"`
	TS      time.Time `json:"ts" bson:"ts"`
}

// Conversation is the AI tutor history of a session.
type Conversation struct {
	SessionID      string        `json:"sessionId" bson:"sessionId"`
	ConversationID string        `json:"conversationId" bson:"-"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	Messages       []ChatMessage `json:"messages" bson:"messages"`
}
