// Package voice maps the bot's mood and developmental stage to speech
// synthesis parameters. The engine only computes the parameters; the actual
// text-to-speech call lives with the caller.
package voice

import "github.com/luminal-ai/companion/pkg/growth"

// Settings is the synthesis parameter set handed to the TTS collaborator.
type Settings struct {
	VoiceID         string  `json:"voiceId"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarityBoost"`
	Style           float64 `json:"style"`
}

const (
	baselineStability  = 0.5
	baselineSimilarity = 0.75
	baselineStyle      = 0.0
)

// Selector resolves a mood and stage to a voice and its settings.
type Selector struct {
	moodVoices     map[string]string
	nurturingVoice string
	baselineVoice  string
}

// NewSelector returns a selector with the default voice catalog.
func NewSelector() *Selector {
	return &Selector{
		moodVoices: map[string]string{
			"excited":  "voice-bright",
			"happy":    "voice-bright",
			"calm":     "voice-steady",
			"peaceful": "voice-steady",
			"anxious":  "voice-gentle",
			"stressed": "voice-gentle",
			"playful":  "voice-lively",
			"curious":  "voice-lively",
		},
		nurturingVoice: "voice-nurturing",
		baselineVoice:  "voice-default",
	}
}

// Select returns the voice for a mood and stage. Early stages always get
// the nurturing voice regardless of mood.
func (s *Selector) Select(mood string, stage growth.Stage) string {
	if growth.IsEarlyStage(stage) {
		return s.nurturingVoice
	}
	if voice, ok := s.moodVoices[mood]; ok {
		return voice
	}
	return s.baselineVoice
}

// ForMood returns the full settings for a mood and stage. Unrecognized
// moods keep the baseline settings unchanged.
func (s *Selector) ForMood(mood string, stage growth.Stage) Settings {
	settings := Settings{
		VoiceID:         s.Select(mood, stage),
		Stability:       baselineStability,
		SimilarityBoost: baselineSimilarity,
		Style:           baselineStyle,
	}

	switch mood {
	case "excited", "happy":
		settings.Stability = 0.3
		settings.Style = 0.6
	case "calm", "peaceful":
		settings.Stability = 0.85
		settings.Style = 0.0
	case "anxious", "stressed":
		settings.Stability = 0.8
		settings.SimilarityBoost = 0.9
		settings.Style = -0.1
	}

	return settings
}
