// ABOUTME: Speech synthesis collaborator interface for the TTS controller
// ABOUTME: Models an engine with async progress and completion callbacks

package interfaces

// SpeechCallbacks carries the notification hooks an engine invokes
// while speaking. Callbacks arrive on a background path; consumers must
// funnel them through their own synchronization.
type SpeechCallbacks struct {
	// OnProgress reports the character range currently being spoken
	OnProgress func(start, end int)

	// OnComplete fires when an utterance finishes on its own. It does
	// not fire for utterances interrupted by Stop.
	OnComplete func()

	// OnError fires when an utterance fails after Speak returned,
	// e.g. an API or network error on the synthesis path. It does not
	// fire for utterances interrupted by Stop.
	OnError func(err error)
}

// SpeechSynthesizer defines the interface for a speech engine.
// Rate is baseRate * multiplier, clamped to the engine's valid bounds.
type SpeechSynthesizer interface {
	// Speak starts synthesizing the given text asynchronously
	Speak(text string, rateMultiplier float64, voiceID string) error

	// Stop halts the current utterance immediately. No completion
	// callback is delivered for a stopped utterance.
	Stop()

	// SetCallbacks registers the notification hooks
	SetCallbacks(callbacks SpeechCallbacks)
}
