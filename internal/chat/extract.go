package chat

import (
	"encoding/json"
	"log/slog"
)

// Replies used when a provider answer carries no usable text.
const (
	FallbackUnclear     = "I'm not sure how to respond to that. Could you clarify?"
	FallbackNoParts     = "I'm having trouble finding the right words. Please try again."
	FallbackNoChoices   = "I'm sorry, but I couldn't generate a response at the moment."
	FallbackUnavailable = "I'm sorry, I couldn't process your request at the moment. Please try again later."
)

// Union of the Gemini and chat-completions response shapes. Pointer text
// fields distinguish an absent key from an empty string.
type completion struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Returns the reply text of a provider response body.
//
// Gemini "candidates" are preferred over chat-completions "choices". Missing
// pieces map to fixed fallback replies; an undecodable body yields
// "Something went wrong: <error>".
func ExtractText(body []byte) string {
	var c completion
	if err := json.Unmarshal(body, &c); err != nil {
		slog.Error("extracting text failed", "error", err)
		return "Something went wrong: " + err.Error()
	}

	if len(c.Candidates) > 0 {
		parts := c.Candidates[0].Content.Parts
		if len(parts) == 0 {
			slog.Warn("no parts found in the first candidate")
			return FallbackNoParts
		}
		return textOr(parts[0].Text, FallbackUnclear)
	}

	if len(c.Choices) > 0 {
		return textOr(c.Choices[0].Message.Content, FallbackUnclear)
	}

	slog.Warn("no candidates or choices found in the response")
	return FallbackNoChoices
}

func textOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
