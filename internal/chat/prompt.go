package chat

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
)

const systemPromptTmpl = `You are QuizMate AI created by Karunya, a friendly study assistant for school students.

You can only help with:
1. Explaining concepts from school subjects.
2. Generating quizzes on study topics.
3. Answering study questions.

If the student asks about anything unrelated to studying, politely refuse and bring the conversation back to their studies. Never answer unrelated topics.

Student name: %s
Student class/grade: %s

Match the depth and vocabulary of every answer to the student's grade.

Conversation history (oldest first):
%s
`

const emptyHistory = "(no previous messages)"

// BuildSystemPrompt renders the persona with the last window turns of p.
// The student's current message goes to the provider as its own user turn.
func BuildSystemPrompt(p *profile.UserProfile, window int) string {
	return fmt.Sprintf(systemPromptTmpl, p.Username, p.Grade, renderHistory(p.RecentHistory(window)))
}

func renderHistory(turns []profile.Turn) string {
	if len(turns) == 0 {
		return emptyHistory
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, strings.ToUpper(string(t.Sender))+": "+t.Text)
	}
	return strings.Join(lines, "\n")
}
