// Package fallback produces canned replies for when Ollama is unreachable.
package fallback

import (
	"fmt"
	"strings"
	"time"
)

// ModelName is the sentinel model label on fallback responses. It must never
// collide with a real model tag.
const ModelName = "fallback-response"

// Responder generates short offline replies keyed loosely on prompt content.
type Responder struct {
	defaultModel string
	now          func() time.Time
}

func NewResponder(defaultModel string) *Responder {
	return &Responder{
		defaultModel: defaultModel,
		now:          time.Now,
	}
}

// Reply always returns a non-empty reply, whatever the prompt contains.
func (r *Responder) Reply(prompt string) string {
	input := strings.ToLower(prompt)

	switch {
	case containsAny(input, "hello", "hi", "hey"):
		return fmt.Sprintf("Hi there! I'm your local AI (%s) running offline on your computer.", r.defaultModel)
	case containsAny(input, "who", "what are you"):
		return fmt.Sprintf("I'm LocalAIHub, your offline AI assistant using the %s model.", r.defaultModel)
	case containsAny(input, "help", "what can you do"):
		return "I can answer questions and help with tasks, all offline for privacy and speed."
	case strings.Contains(input, "time"):
		return fmt.Sprintf("It's currently %s.", r.now().Format("2006-01-02 15:04:05"))
	default:
		return fmt.Sprintf("I'm your offline AI (%s). You said: '%s...' - I'm handling this locally for privacy.",
			r.defaultModel, truncate(prompt, 50))
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
