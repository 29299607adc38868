package genai

import "context"

// tutorInstruction matches the tone the platform has always used.
const tutorInstruction = `You are an expert English Language Tutor at 'Study Link'.
Your goal is to help students with grammar, vocabulary, pronunciation tips, and writing.
Keep your tone encouraging, professional, and educational.
When explaining grammar, provide examples.
If asked about center policies, suggest they contact their curator.`

// Fallback replies shown when the API is unreachable or unconfigured; the
// tutor degrades, it never errors out to the student.
const (
	TutorUnavailableReply = "I'm sorry, I cannot connect to my brain right now. Please ensure the API key is configured."
	TutorErrorReply       = "Oops! I encountered an error while thinking. Let's try again in a moment."
)

// TutorReply answers one student message given the prior conversation.
func (c *Client) TutorReply(ctx context.Context, message string, history []Turn) (string, error) {
	contents := make([]genContent, 0, len(history)+1)
	for _, t := range history {
		role := t.Role
		if role != "model" {
			role = "user"
		}
		contents = append(contents, genContent{Role: role, Parts: []genPart{{Text: t.Text}}})
	}
	contents = append(contents, genContent{Role: "user", Parts: []genPart{{Text: message}}})

	text, err := c.generateContent(ctx, tutorInstruction, contents,
		generationConfig{Temperature: 0.7, TopK: 40, TopP: 0.95})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "I'm processing that. Can you rephrase?", nil
	}
	return text, nil
}
