package classifier

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// minOfferLength gates the chat-side offer detection.
	minOfferLength = 150
	// minAnalyzerLength gates the analyzer input validation.
	minAnalyzerLength = 200
	// minKeywordHits is the number of distinct vocabulary hits required.
	minKeywordHits = 2
)

var linkPattern = regexp.MustCompile(`(?i)(https?://|\bwww\.)`)

// offerKeywords is the vocabulary used to decide whether a chat message is a
// pasted job offer rather than a question.
var offerKeywords = []string{
	"requisitos",
	"experiencia",
	"sueldo",
	"salario",
	"vacante",
	"beneficios",
	"híbrido",
	"remoto",
	"responsabilidades",
	"nice to have",
	"imprescindible",
	"stack",
	"tecnologías",
	"job description",
	"skills",
	"hiring",
}

// analyzerKeywords is the HR/tech vocabulary used to gate analyzer input.
var analyzerKeywords = []string{
	"requisitos",
	"experiencia",
	"stack",
	"tecnologías",
	"desarrollador",
	"developer",
	"frontend",
	"backend",
	"fullstack",
	"salario",
	"remoto",
	"proyecto",
	"conocimientos",
	"años",
	"years",
	"skills",
	"oferta",
	"puesto",
}

// Fixed validation messages, one per rule class. The UI shows them verbatim.
const (
	MsgEmptyInput   = "Introduce la descripción de una oferta para poder analizarla."
	MsgLinkDetected = "Enlace detectado: pega el texto completo de la oferta, no un link."
	MsgTooShort     = "El texto es demasiado corto. Pega la descripción completa de la oferta (mínimo 200 caracteres)."
	MsgNotTechOffer = "Esto no parece una oferta tecnológica. Incluye los requisitos, el stack o las responsabilidades del puesto."
)

type ValidationResult struct {
	IsValid      bool   `json:"is_valid"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// LooksLikeJobOffer reports whether text reads like a pasted job offer: long
// enough and hitting at least two distinct entries of the offer vocabulary.
// A repeated keyword counts once.
func LooksLikeJobOffer(text string) bool {
	if utf8.RuneCountInString(text) < minOfferLength {
		return false
	}
	return countHits(strings.ToLower(text), offerKeywords) >= minKeywordHits
}

// ContainsExternalLink reports whether text carries an http(s) URL or a
// www.-prefixed token anywhere in the string.
func ContainsExternalLink(text string) bool {
	return linkPattern.MatchString(text)
}

// ValidateAnalyzerInput applies the analyzer gating rules in fixed order;
// the first failing rule wins.
func ValidateAnalyzerInput(text string) ValidationResult {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return ValidationResult{ErrorMessage: MsgEmptyInput}
	}
	if ContainsExternalLink(trimmed) {
		return ValidationResult{ErrorMessage: MsgLinkDetected}
	}
	if utf8.RuneCountInString(trimmed) < minAnalyzerLength {
		return ValidationResult{ErrorMessage: MsgTooShort}
	}
	if countHits(strings.ToLower(trimmed), analyzerKeywords) < minKeywordHits {
		return ValidationResult{ErrorMessage: MsgNotTechOffer}
	}
	return ValidationResult{IsValid: true}
}

func countHits(text string, phrases []string) int {
	if text == "" {
		return 0
	}
	hits := 0
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			hits++
		}
	}
	return hits
}
