package assessment

import (
	"time"

	"github.com/sandevgo/edagent/internal/core"
)

// Session is one skill-assessment interview. It is treated as a value:
// Flow methods return an updated copy and never mutate their input.
type Session struct {
	ID                   string
	UserID               string
	SkillArea            string
	Questions            []core.Question
	Responses            []string
	CurrentQuestionIndex int
	Status               core.AssessmentStatus
	Extended             bool
	StartedAt            time.Time
	UpdatedAt            time.Time
	CompletedAt          *time.Time
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Questions = append([]core.Question(nil), s.Questions...)
	c.Responses = append([]string(nil), s.Responses...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func (s *Session) TotalQuestions() int {
	return len(s.Questions)
}

// Progress is answered/total against the current, possibly extended, total.
func (s *Session) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.CurrentQuestionIndex) / float64(len(s.Questions))
}

func (s *Session) CurrentQuestion() (core.Question, bool) {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return core.Question{}, false
	}
	return s.Questions[s.CurrentQuestionIndex], true
}

func (s *Session) IsComplete() bool {
	return s.CurrentQuestionIndex >= len(s.Questions)
}

// Consistent reports whether answers, questions and the cursor agree.
func (s *Session) Consistent() bool {
	return len(s.Responses) <= len(s.Questions) &&
		s.CurrentQuestionIndex == len(s.Responses) &&
		len(s.Questions) <= MaxQuestions
}
