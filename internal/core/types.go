package core

import "time"

const (
	AppName      = "CampusBot"
	AppUserAgent = "CampusBot/0.1"
	AppVersion   = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a provider conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports provider token accounting when available.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is what a generation provider returns for a message sequence.
type Completion struct {
	Content      string `json:"content"`
	Usage        *Usage `json:"usage,omitempty"`
	Model        string `json:"model"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// ArticleIntro is the structured introduction block of an article.
type ArticleIntro struct {
	Author        string `json:"author"`
	Date          string `json:"data"`
	Label         string `json:"label"`
	LikeNumber    int    `json:"likeNumber"`
	CommentNumber int    `json:"commentNumber"`
}

// Article is a corpus record. Owned by the external article backend; the
// service only ever holds a refreshable read-only copy.
type Article struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Introduction ArticleIntro `json:"introduction"`
	Cover        string       `json:"cover,omitempty"`
	Content      string       `json:"content"`
}

// SearchResult pairs an article with its lexical relevance to one query.
type SearchResult struct {
	Article         Article  `json:"article"`
	RelevanceScore  float64  `json:"relevanceScore"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// ConversationEntry is one processed exchange, immutable once recorded.
type ConversationEntry struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Reply      string    `json:"reply"`
	Topic      string    `json:"topic"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Answer is the outcome of processing a single query.
type Answer struct {
	Reply          string  `json:"reply"`
	Topic          string  `json:"topic"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime int64   `json:"processingTime"` // milliseconds
}

// HistoryStats are the aggregates derived from the conversation ledger.
type HistoryStats struct {
	TotalRequests     int            `json:"totalRequests"`
	ConversationCount int            `json:"conversationCount"`
	TopicDistribution map[string]int `json:"topicDistribution"`
	AverageConfidence float64        `json:"averageConfidence"`
	LastActivity      *time.Time     `json:"lastActivity"`
}
