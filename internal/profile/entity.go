package profile

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

func (s Sender) IsValid() bool {
	return s == SenderUser || s == SenderAI
}

type Turn struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	Time   time.Time `json:"time"`
}

// NewTurn stamps the turn in UTC so persisted documents round-trip exactly.
func NewTurn(sender Sender, text string, at time.Time) Turn {
	return Turn{Sender: sender, Text: text, Time: at.UTC()}
}

type UserProfile struct {
	Username     string `json:"username"`
	Grade        string `json:"grade"`
	History      []Turn `json:"history"`
	QuizzesTaken int    `json:"quizzesTaken"`
}

func newProfile(username, grade string) *UserProfile {
	return &UserProfile{
		Username: username,
		Grade:    grade,
		History:  []Turn{},
	}
}

// RecentHistory returns the last n turns, oldest first.
func (p *UserProfile) RecentHistory(n int) []Turn {
	if n <= 0 || len(p.History) == 0 {
		return nil
	}
	if len(p.History) <= n {
		return p.History
	}
	return p.History[len(p.History)-n:]
}

func (p *UserProfile) clone() *UserProfile {
	c := *p
	c.History = append([]Turn(nil), p.History...)
	if c.History == nil {
		c.History = []Turn{}
	}
	return &c
}
