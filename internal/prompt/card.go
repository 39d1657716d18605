package prompt

import "strings"

// cardMaxContent caps the source text fed into a card prompt.
const cardMaxContent = 2000

var cardPrompts = map[string]string{
	"fun_fact": `Extract ONE interesting, surprising, or little-known fact from this text. Make it engaging and memorable.

Text: %CONTENT%

Respond in this EXACT JSON format:
{
  "title": "Did you know?",
  "content": "The interesting fact in 1-2 sentences",
  "example": "Optional real-world application or context"
}`,

	"mnemonic": `Create a mnemonic device to help remember key information from this text.

Text: %CONTENT%

Respond in this EXACT JSON format:
{
  "title": "Remember this!",
  "content": "The mnemonic device",
  "example": "Explanation of what each part means"
}`,

	"key_concept": `Identify and explain ONE key concept from this text in simple, clear terms.

Text: %CONTENT%

Respond in this EXACT JSON format:
{
  "title": "The concept name (2-5 words)",
  "content": "Clear explanation in 2-3 sentences",
  "example": "A concrete example or application"
}`,

	"quote": `Extract or create ONE important, memorable quote or key statement from this text.

Text: %CONTENT%

Respond in this EXACT JSON format:
{
  "title": "Key Insight",
  "content": "The quote or important statement",
  "example": "Why this is important or what it means"
}`,

	"summary": `Create a brief, engaging summary of the main point from this text.

Text: %CONTENT%

Respond in this EXACT JSON format:
{
  "title": "In a nutshell",
  "content": "Concise summary in 2-3 sentences",
  "example": "Optional key takeaway"
}`,

	"tip": `Extract ONE practical tip or advice from this text.

Text: %CONTENT%

Respond in this EXACT JSON format:
{
  "title": "Pro Tip",
  "content": "The practical tip or advice",
  "example": "How to apply it"
}`,

	"question": `Create ONE thought-provoking question based on this text that encourages deeper thinking.

Text: %CONTENT%

Respond in this EXACT JSON format:
{
  "title": "Think about this",
  "content": "The thought-provoking question",
  "example": "Why this question matters or what it reveals"
}`,

	"definition": `Provide a clear definition of ONE important term or concept from this text.

Text: %CONTENT%

Respond in this EXACT JSON format:
{
  "title": "Definition: [Term]",
  "content": "Clear, simple definition",
  "example": "Usage example or analogy"
}`,
}

// Card builds the generation prompt for a card type. Returns false for
// unknown card types. Content is truncated to keep the prompt bounded.
func Card(cardType, content string) (string, bool) {
	tmpl, ok := cardPrompts[cardType]
	if !ok {
		return "", false
	}
	if len(content) > cardMaxContent {
		content = content[:cardMaxContent]
	}
	return strings.Replace(tmpl, "%CONTENT%", content, 1), true
}
