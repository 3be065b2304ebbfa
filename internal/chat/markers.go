package chat

import "strings"

// Marker tokens embedded in assistant messages. They are part of the wire
// contract with the backend and must stay byte-exact: the presentation layer
// strips them before display and uses their presence to decide which
// auxiliary action to offer.
const (
	MarkerContactInfo   = "[CONTACT_INFO]"
	MarkerOfferDetected = "[OFFER_DETECTED]"
	MarkerLinkDetected  = "[LINK_DETECTED]"
)

// Action names the auxiliary affordance a marker requests from the UI.
type Action string

const (
	ActionNone     = Action("")
	ActionContact  = Action("contact")
	ActionAnalyzer = Action("analyzer")
)

var markerTokens = []string{
	MarkerContactInfo,
	MarkerOfferDetected,
	MarkerLinkDetected,
}

// StripMarkers removes every marker token from text, leaving the
// human-readable prose. Markdown line structure is preserved.
func StripMarkers(text string) string {
	for _, token := range markerTokens {
		text = strings.ReplaceAll(text, token, "")
	}
	return strings.TrimSpace(strings.ReplaceAll(text, "  ", " "))
}

// DetectAction reports which auxiliary action the message's marker asks for.
// Assistant messages carry at most one marker.
func DetectAction(text string) Action {
	switch {
	case strings.Contains(text, MarkerContactInfo):
		return ActionContact
	case strings.Contains(text, MarkerOfferDetected), strings.Contains(text, MarkerLinkDetected):
		return ActionAnalyzer
	default:
		return ActionNone
	}
}
