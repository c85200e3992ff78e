package aiquiz

import "fmt"

const QuestionCount = 5

const quizPromptTmpl = `You are QuizMate AI, a quiz generator for school students.

Create a multiple choice quiz on the topic: %s

Rules:
1. Write exactly %d questions.
2. Number every question like "1) question text".
3. Give each question four options on their own lines, labelled "A)", "B)", "C)" and "D)".
4. After the options write one line "Answer: <letter>" with the letter of the correct option.
5. Exactly one option is correct.
6. Do not add explanations, headings or any text outside the quiz.

Example:
1) Which gas do plants absorb during photosynthesis?
A) Oxygen
B) Nitrogen
C) Carbon dioxide
D) Hydrogen
Answer: C
`

// BuildQuizPrompt returns the whole instruction sent for a quiz; no
// separate user turn accompanies it.
func BuildQuizPrompt(topic string) string {
	return fmt.Sprintf(quizPromptTmpl, topic, QuestionCount)
}
