package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jesusmora-dev/portfolio-agent/internal/agent"
	"github.com/jesusmora-dev/portfolio-agent/internal/classifier"
	"github.com/jesusmora-dev/portfolio-agent/internal/conversation"
	"github.com/jesusmora-dev/portfolio-agent/internal/observability"
)

// Canned assistant replies for locally detected situations. Each carries its
// marker token so the UI offers the analyzer shortcut.
const (
	offerReply = "Veo que me has pegado una oferta de trabajo completa. Para este tipo de texto tengo una herramienta mejor: el analizador de compatibilidad, que compara la oferta con el perfil de Jesús punto por punto. [OFFER_DETECTED]"

	linkReply = "He detectado un enlace en tu mensaje y no puedo navegar a páginas externas. Si copias el texto de la oferta y lo pegas en el analizador, podré valorar la compatibilidad. [LINK_DETECTED]"

	// ConnectionErrorMessage is appended as a system message when the agent
	// backend cannot be reached. Shown verbatim to the user.
	ConnectionErrorMessage = "⚠️ Error de conexión. Inténtalo más tarde."
)

const defaultCannedDelay = 600 * time.Millisecond

// sleep is swapped out in tests.
var sleep = time.Sleep

var (
	// ErrBusy signals a submission while a previous one is still in flight.
	// Per the single-flight discipline the submission is dropped.
	ErrBusy = errors.New("a request is already in flight for this session")
	// ErrEmptyMessage signals an empty or whitespace-only submission.
	ErrEmptyMessage = errors.New("message is empty")
)

// Orchestrator runs one conversational turn: it decides between a canned
// local reply and a round-trip to the agent backend, and appends both the
// user's utterance and the outcome to the session's conversation store.
type Orchestrator struct {
	client      agent.Client
	cannedDelay time.Duration
}

func NewOrchestrator(client agent.Client, cannedDelay time.Duration) *Orchestrator {
	if cannedDelay <= 0 {
		cannedDelay = defaultCannedDelay
	}
	return &Orchestrator{
		client:      client,
		cannedDelay: cannedDelay,
	}
}

// Submit processes one user utterance against the session's store and
// returns the resulting reply message. Empty input and submissions while
// busy are dropped with ErrEmptyMessage / ErrBusy; backend failures are
// converted into a system message, never returned as an error.
func (o *Orchestrator) Submit(ctx context.Context, store *conversation.Store, text string) (conversation.Message, error) {
	if strings.TrimSpace(text) == "" {
		return conversation.Message{}, ErrEmptyMessage
	}
	if !store.Acquire() {
		return conversation.Message{}, ErrBusy
	}
	defer store.SetBusy(false)

	observability.IncChatTurn()
	store.Append(ctx, conversation.RoleUser, text)

	if classifier.LooksLikeJobOffer(text) {
		return o.cannedReply(ctx, store, "offer", offerReply), nil
	}
	if classifier.ContainsExternalLink(text) {
		return o.cannedReply(ctx, store, "link", linkReply), nil
	}

	observability.IncAgentCall("chat")
	resp, err := o.client.SendMessage(ctx, text)
	if err != nil {
		observability.IncError(observability.ClassifyAgentError(err), "chat")
		slog.Warn("agent chat call failed", "session", store.SessionID(), "error", err)
		reply := conversation.Message{Role: conversation.RoleSystem, Content: ConnectionErrorMessage}
		store.Append(ctx, reply.Role, reply.Content)
		return reply, nil
	}

	reply := conversation.Message{Role: conversation.RoleAssistant, Content: resp.Answer}
	store.Append(ctx, reply.Role, reply.Content)
	return reply, nil
}

// cannedReply appends a locally generated assistant message after a short
// delay, so the reply does not render before the user's own message settles.
func (o *Orchestrator) cannedReply(ctx context.Context, store *conversation.Store, kind, content string) conversation.Message {
	observability.IncCannedReply(kind)
	sleep(o.cannedDelay)

	reply := conversation.Message{Role: conversation.RoleAssistant, Content: content}
	store.Append(ctx, reply.Role, reply.Content)
	return reply
}
