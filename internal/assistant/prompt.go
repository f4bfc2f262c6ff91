package assistant

import "fmt"

// suggestMaxTokens caps the keyword list reply independently of the configured ask budget.
const suggestMaxTokens = 100

func suggestPrompt(text string) string {
	return fmt.Sprintf(`Given the following text, suggest 5-10 relevant words or phrases that could be used to enhance or expand upon this content. Return only the words separated by commas, no explanations:

Text: "%s"

Words:`, text)
}

func askPrompt(text string) string {
	return fmt.Sprintf(`Please provide a helpful and informative response to the following request or question:

"%s"

Response:`, text)
}
