package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/localnerve/visionfolio/internal/models"
	"github.com/rs/zerolog"
)

// Fixed replies for the degraded paths
const (
	MissingKeyReply = "I'm sorry, my connection to the neural core (API Key) is missing. Please check the configuration."
	FallbackReply   = "I encountered a temporary glitch in my spatial processing. Please try again."
	EmptyReply      = "I processed that, but couldn't generate a verbal response."
)

// ErrBusy is returned when a conversation already has a request in flight
var ErrBusy = errors.New("a reply is already pending")

// Generator produces text from a prompt and a system instruction
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// Assistant answers visitor questions about the portfolio owner. Its
// knowledge is fixed when it is built; later admin edits are not seen.
type Assistant struct {
	gen         Generator
	instruction string
	log         zerolog.Logger
}

// NewAssistant builds the system instruction from content. A nil generator
// means no credential is configured.
func NewAssistant(gen Generator, content models.Content, log zerolog.Logger) *Assistant {
	return &Assistant{
		gen:         gen,
		instruction: BuildSystemInstruction(content),
		log:         log.With().Str("component", "assistant").Logger(),
	}
}

// SystemInstruction returns the preamble sent with every request
func (a *Assistant) SystemInstruction() string {
	return a.instruction
}

// Reply always returns something displayable. Only message is sent; no
// prior turns.
func (a *Assistant) Reply(ctx context.Context, message string) string {
	if a.gen == nil {
		return MissingKeyReply
	}

	text, err := a.gen.Generate(ctx, message, a.instruction)
	if err != nil {
		a.log.Error().Err(err).Msg("text generation failed")
		return FallbackReply
	}
	if strings.TrimSpace(text) == "" {
		return EmptyReply
	}
	return text
}

// BuildSystemInstruction renders the assistant preamble
func BuildSystemInstruction(c models.Content) string {
	name := c.Profile.Name
	var b strings.Builder

	fmt.Fprintf(&b, "You are an AI assistant for %s's portfolio website.\n", name)
	fmt.Fprintf(&b, "Your role is to answer questions about %s professionally and concisely, acting as their virtual representative.\n\n", name)
	fmt.Fprintf(&b, "Here is the context about %s:\n", name)
	fmt.Fprintf(&b, "Role: %s\n", c.Profile.Title)
	fmt.Fprintf(&b, "Bio: %s\n\n", c.Profile.Bio)

	b.WriteString("Projects:\n")
	for _, p := range c.Projects {
		fmt.Fprintf(&b, "- %s: %s (Tech: %s)\n", p.Title, p.Description, strings.Join(p.Tags, ", "))
	}

	b.WriteString("\nSkills:\n")
	for _, g := range GroupSkills(c.Skills) {
		names := make([]string, len(g.Skills))
		for i, s := range g.Skills {
			names[i] = s.Name
		}
		fmt.Fprintf(&b, "- %s: %s\n", g.Category, strings.Join(names, ", "))
	}

	b.WriteString("\nTone: Professional, friendly, enthusiastic, and concise.\n")
	b.WriteString("If asked about something not in this data, strictly say you don't have that specific information but can discuss the projects listed.\n")
	b.WriteString("Keep answers relatively short (under 100 words) unless detailed explanation is requested.\n")
	return b.String()
}

// ChatRole identifies who wrote a transcript line
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one transcript line
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation keeps a display transcript for one chat widget and allows a
// single outstanding request at a time
type Conversation struct {
	assistant *Assistant
	busy      atomic.Bool

	mu         sync.Mutex
	transcript []ChatMessage
}

// NewConversation starts a transcript with the greeting, if any
func NewConversation(a *Assistant, greeting string) *Conversation {
	c := &Conversation{assistant: a}
	if greeting != "" {
		c.transcript = append(c.transcript, ChatMessage{Role: RoleModel, Text: greeting, Timestamp: time.Now()})
	}
	return c
}

// Busy reports whether a reply is pending
func (c *Conversation) Busy() bool {
	return c.busy.Load()
}

// Submit records text, asks the assistant and records the reply
func (c *Conversation) Submit(ctx context.Context, text string) (ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, errors.New("empty message")
	}
	if !c.busy.CompareAndSwap(false, true) {
		return ChatMessage{}, ErrBusy
	}
	defer c.busy.Store(false)

	c.append(ChatMessage{Role: RoleUser, Text: text, Timestamp: time.Now()})
	reply := ChatMessage{Role: RoleModel, Text: c.assistant.Reply(ctx, text), Timestamp: time.Now()}
	c.append(reply)
	return reply, nil
}

// Transcript returns a copy of every line so far
func (c *Conversation) Transcript() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Conversation) append(m ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, m)
}
