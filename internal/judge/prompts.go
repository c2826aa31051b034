package judge

import "fmt"

// SystemPrompt frames the task as numeric semantic-similarity grading.
func SystemPrompt() string {
	return "You are an AI who has a multi-dimensional vector representation " +
		"of all the words and terms in the English language. Rate the answer " +
		"from 0 to 100, where 0 means completely unrelated and 100 means " +
		"exact match. Only provide the rating as an integer."
}

// BuildUserPrompt embeds both answers verbatim. No escaping: the model is
// told to output a bare integer and the reply is range-checked regardless.
func BuildUserPrompt(correctAnswer, userAnswer string) string {
	return fmt.Sprintf(
		"Rate the following answer from 0 to 100:\nCorrect Answer: %s\nUser Answer: %s. Only respond with a number between 0 and 100.",
		correctAnswer, userAnswer,
	)
}
