// ABOUTME: Reading domain models shared by the RSVP and TTS session engines
// ABOUTME: Covers tokenized text, ORP word splits, and persisted progress

package domain

// ReadingMode identifies which engine a progress record belongs to.
type ReadingMode string

const (
	// ModeRSVP is word-at-a-time flashed reading
	ModeRSVP ReadingMode = "rsvp"

	// ModeTTS is sentence-by-sentence spoken reading
	ModeTTS ReadingMode = "tts"
)

// IsValid reports whether the mode is one of the known reading modes.
func (m ReadingMode) IsValid() bool {
	return m == ModeRSVP || m == ModeTTS
}

// TokenizedText is the word/paragraph decomposition of an article's
// content. It is derived per session and never persisted.
type TokenizedText struct {
	// Words is the flat ordered word sequence across all paragraphs
	Words []string

	// ParagraphIndices is parallel to Words; each entry is the index of
	// the word's source paragraph in Paragraphs
	ParagraphIndices []int

	// Paragraphs holds one entry per non-blank source line
	Paragraphs []string
}

// RSVPWord is a word decomposed around its optimal recognition point.
// LeftPart + FocusLetter + RightPart always reassembles the source word.
type RSVPWord struct {
	LeftPart    string
	FocusLetter string
	RightPart   string
}

// ReadingProgress is the persisted position of one (article, mode) pair.
// TTS progress is stored as an equivalent word offset so both modes
// share this shape.
type ReadingProgress struct {
	ArticleID        string
	CurrentWordIndex int
	TotalWords       int
	Mode             ReadingMode
}

// IsValid checks if the progress record has sane fields.
func (p *ReadingProgress) IsValid() bool {
	if p.ArticleID == "" {
		return false
	}

	if p.CurrentWordIndex < 0 || p.TotalWords < 0 {
		return false
	}

	return p.Mode.IsValid()
}
