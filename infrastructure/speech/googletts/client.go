// ABOUTME: SpeechSynthesizer implementation backed by Google Cloud Text-to-Speech
// ABOUTME: Synthesizes one utterance at a time and streams audio to a sink

package googletts

import (
	"context"
	"sync"

	"pacereader-api/core/interfaces"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// Google caps SpeakingRate to this range; values outside it are
// rejected by the API.
const (
	minSpeakingRate = 0.25
	maxSpeakingRate = 4.0

	baseSpeakingRate = 1.0
)

// AudioSink receives synthesized audio, one utterance per call.
type AudioSink func(audio []byte)

// Synthesizer implements the SpeechSynthesizer interface using the
// Cloud Text-to-Speech API. Utterances are synthesized asynchronously;
// Stop cancels the in-flight request and suppresses its completion.
type Synthesizer struct {
	mu sync.Mutex

	client       *texttospeech.Client
	languageCode string
	defaultVoice string
	sink         AudioSink
	logger       interfaces.Logger

	callbacks interfaces.SpeechCallbacks
	cancel    context.CancelFunc
	gen       int
}

// NewSynthesizer dials the Text-to-Speech API using ambient Google
// credentials.
func NewSynthesizer(ctx context.Context, languageCode, defaultVoice string, sink AudioSink, logger interfaces.Logger) (*Synthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		client:       client,
		languageCode: languageCode,
		defaultVoice: defaultVoice,
		sink:         sink,
		logger:       logger,
	}, nil
}

// Speak starts synthesizing the text asynchronously. The previous
// utterance, if still in flight, is cancelled first.
func (s *Synthesizer) Speak(text string, rateMultiplier float64, voiceID string) error {
	s.mu.Lock()
	s.stopLocked()
	s.gen++
	gen := s.gen

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	req := s.buildRequest(text, rateMultiplier, voiceID)
	s.mu.Unlock()

	go s.synthesize(ctx, gen, text, req)
	return nil
}

// Stop halts the current utterance. Its completion callback will not
// be delivered.
func (s *Synthesizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// SetCallbacks registers the notification hooks
func (s *Synthesizer) SetCallbacks(callbacks interfaces.SpeechCallbacks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = callbacks
}

// Close releases the API connection
func (s *Synthesizer) Close() error {
	s.Stop()
	return s.client.Close()
}

func (s *Synthesizer) stopLocked() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Synthesizer) buildRequest(text string, rateMultiplier float64, voiceID string) *texttospeechpb.SynthesizeSpeechRequest {
	voice := voiceID
	if voice == "" {
		voice = s.defaultVoice
	}

	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: s.languageCode,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  clampRate(baseSpeakingRate * rateMultiplier),
		},
	}
}

func (s *Synthesizer) synthesize(ctx context.Context, gen int, text string, req *texttospeechpb.SynthesizeSpeechRequest) {
	resp, err := s.client.SynthesizeSpeech(ctx, req)

	s.mu.Lock()
	live := gen == s.gen
	callbacks := s.callbacks
	sink := s.sink
	s.mu.Unlock()

	if !live {
		// Stopped while in flight; drop the result silently.
		return
	}

	if err != nil {
		if s.logger != nil {
			s.logger.Error("Speech synthesis failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		if callbacks.OnError != nil {
			callbacks.OnError(err)
		}
		return
	}

	if sink != nil {
		sink(resp.AudioContent)
	}
	if callbacks.OnProgress != nil {
		callbacks.OnProgress(0, len(text))
	}
	if callbacks.OnComplete != nil {
		callbacks.OnComplete()
	}
}

func clampRate(rate float64) float64 {
	if rate < minSpeakingRate {
		return minSpeakingRate
	}
	if rate > maxSpeakingRate {
		return maxSpeakingRate
	}
	return rate
}
