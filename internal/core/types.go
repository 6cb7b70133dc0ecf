package core

import "context"

const (
	AppName          = "EdAgent"
	AppUserAgent     = "EdAgent-Coach/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/edagent"
	AppVersion       = "0.1.0"
)

type Intent string

const (
	IntentAssessment            Intent = "assessment"
	IntentLearningPath          Intent = "learning_path"
	IntentContentRecommendation Intent = "content_recommendation"
	IntentGeneral               Intent = "general"
)

type ResponseType string

const (
	ResponseText                  ResponseType = "text"
	ResponseAssessment            ResponseType = "assessment"
	ResponseLearningPath          ResponseType = "learning_path"
	ResponseContentRecommendation ResponseType = "content_recommendation"
)

// Response is the structured answer produced for every user turn.
type Response struct {
	Message                string         `json:"message"`
	Type                   ResponseType   `json:"response_type"`
	Confidence             float64        `json:"confidence_score"`
	SuggestedActions       []string       `json:"suggested_actions,omitempty"`
	ContentRecommendations []ContentItem  `json:"content_recommendations,omitempty"`
	Metadata               map[string]any `json:"metadata,omitempty"`
}

// FallbackConfidence is the ceiling for apology and degraded responses.
const FallbackConfidence = 0.5

func ApologyResponse() Response {
	return Response{
		Message:    "I'm having trouble processing your message right now. Could you please try again?",
		Type:       ResponseText,
		Confidence: FallbackConfidence,
	}
}

// Coach answers one user turn. Transports depend on this instead of the
// orchestrator itself.
type Coach interface {
	HandleMessage(ctx context.Context, userID, text string) Response
}
