package chat_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizmate-lambda/internal/chat"
	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
)

func profileWithHistory(n int) *profile.UserProfile {
	p := &profile.UserProfile{Username: "alice", Grade: "9", History: []profile.Turn{}}
	start := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		sender := profile.SenderUser
		if i%2 == 1 {
			sender = profile.SenderAI
		}
		p.History = append(p.History, profile.NewTurn(sender, fmt.Sprintf("turn %d", i), start.Add(time.Duration(i)*time.Minute)))
	}
	return p
}

func historyLines(prompt string) []string {
	var out []string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "USER: ") || strings.HasPrefix(line, "AI: ") {
			out = append(out, line)
		}
	}
	return out
}

func TestBuildSystemPrompt_EmbedsIdentity(t *testing.T) {
	prompt := chat.BuildSystemPrompt(profileWithHistory(0), 10)

	assert.Contains(t, prompt, "QuizMate AI")
	assert.Contains(t, prompt, "Student name: alice")
	assert.Contains(t, prompt, "Student class/grade: 9")
	assert.Contains(t, prompt, "Never answer unrelated topics")
	assert.Contains(t, prompt, "(no previous messages)")
	assert.Empty(t, historyLines(prompt))
}

func TestBuildSystemPrompt_TrailingWindow(t *testing.T) {
	tests := []struct {
		name      string
		turns     int
		window    int
		wantFirst int
		wantCount int
	}{
		{"LongHistory", 15, 10, 5, 10},
		{"ExactlyWindow", 10, 10, 0, 10},
		{"ShortHistory", 3, 10, 0, 3},
		{"SmallWindow", 8, 5, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := historyLines(chat.BuildSystemPrompt(profileWithHistory(tt.turns), tt.window))
			require.Len(t, lines, tt.wantCount)

			for i, line := range lines {
				n := tt.wantFirst + i
				sender := "USER"
				if n%2 == 1 {
					sender = "AI"
				}
				assert.Equal(t, fmt.Sprintf("%s: turn %d", sender, n), line)
			}
		})
	}
}

func TestBuildSystemPrompt_IsPure(t *testing.T) {
	p := profileWithHistory(12)
	before := len(p.History)

	first := chat.BuildSystemPrompt(p, 10)
	second := chat.BuildSystemPrompt(p, 10)

	assert.Equal(t, first, second)
	assert.Len(t, p.History, before)
}

func TestBuildSystemPrompt_CurrentMessageAppearsOnce(t *testing.T) {
	p := profileWithHistory(4)
	p.History = append(p.History, profile.NewTurn(profile.SenderUser, "What is osmosis?", time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)))

	prompt := chat.BuildSystemPrompt(p, 10)

	assert.Equal(t, 1, strings.Count(prompt, "What is osmosis?"))
	lines := historyLines(prompt)
	require.NotEmpty(t, lines)
	assert.Equal(t, "USER: What is osmosis?", lines[len(lines)-1])
}
