package bot

import "strings"

// Dialog action types.
const (
	DialogClose      = "Close"
	DialogDelegate   = "Delegate"
	DialogElicitSlot = "ElicitSlot"
	ContentPlainText = "PlainText"
)

// Intent fulfillment states.
const (
	StateFulfilled  = "Fulfilled"
	StateFailed     = "Failed"
	StateInProgress = "InProgress"
)

// Event is the subset of a Lex V2 fulfillment event the bot reads.
type Event struct {
	SessionID        string       `json:"sessionId,omitempty"`
	InputTranscript  string       `json:"inputTranscript,omitempty"`
	InvocationSource string       `json:"invocationSource,omitempty"`
	Bot              *BotInfo     `json:"bot,omitempty"`
	SessionState     SessionState `json:"sessionState"`
}

type BotInfo struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	AliasID  string `json:"aliasId,omitempty"`
	LocaleID string `json:"localeId,omitempty"`
	Version  string `json:"version,omitempty"`
}

type SessionState struct {
	DialogAction      *DialogAction     `json:"dialogAction,omitempty"`
	Intent            Intent            `json:"intent"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
}

type DialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

// Intent slots are nullable on the wire; a nil *Slot means "not filled".
type Intent struct {
	Name              string           `json:"name"`
	Slots             map[string]*Slot `json:"slots,omitempty"`
	State             string           `json:"state,omitempty"`
	ConfirmationState string           `json:"confirmationState,omitempty"`
}

type Slot struct {
	Value *SlotValue `json:"value,omitempty"`
}

type SlotValue struct {
	OriginalValue    string   `json:"originalValue,omitempty"`
	InterpretedValue string   `json:"interpretedValue,omitempty"`
	ResolvedValues   []string `json:"resolvedValues,omitempty"`
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type Response struct {
	SessionState SessionState `json:"sessionState"`
	Messages     []Message    `json:"messages"`
}

// SlotValue returns the interpreted value of slot name, falling back to
// the raw utterance, or "" when the slot is unfilled.
func (e Event) SlotValue(name string) string {
	s, ok := e.SessionState.Intent.Slots[name]
	if !ok || s == nil || s.Value == nil {
		return ""
	}
	if v := strings.TrimSpace(s.Value.InterpretedValue); v != "" {
		return v
	}
	return strings.TrimSpace(s.Value.OriginalValue)
}

// reply builds a response that echoes the inbound intent.
func reply(ev Event, dialog DialogAction, state string, text string) Response {
	intent := ev.SessionState.Intent
	intent.State = state
	return Response{
		SessionState: SessionState{
			DialogAction:      &dialog,
			Intent:            intent,
			SessionAttributes: ev.SessionState.SessionAttributes,
		},
		Messages: []Message{{ContentType: ContentPlainText, Content: text}},
	}
}
