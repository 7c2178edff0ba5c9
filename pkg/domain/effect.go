package domain

// EffectKind is the single status write produced by a resolved request.
type EffectKind string

const (
	EffectNone     EffectKind = "none"
	EffectMessage  EffectKind = "message"
	EffectAlert    EffectKind = "alert"
	EffectNavigate EffectKind = "navigate"
)

// Tone tags an inline message.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Effect is what a host must reflect once a request settles.
type Effect struct {
	Kind     EffectKind `json:"kind"`
	Text     string     `json:"text,omitempty"`
	Tone     Tone       `json:"tone,omitempty"`
	Location string     `json:"location,omitempty"`
}

// Message builds an inline-message effect.
func Message(text string, tone Tone) Effect {
	return Effect{Kind: EffectMessage, Text: text, Tone: tone}
}

// Alert builds a disruptive alert effect.
func Alert(text string) Effect {
	return Effect{Kind: EffectAlert, Text: text, Tone: ToneError}
}

// Navigate builds a navigation effect.
func Navigate(location string) Effect {
	return Effect{Kind: EffectNavigate, Location: location}
}

// NoEffect leaves the board untouched.
func NoEffect() Effect { return Effect{Kind: EffectNone} }
