// Package transcript converts loosely structured conversation payloads into
// validated, ordered turn sequences ready for a model call.
package transcript

// Role tags one side of the conversation.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is a single validated utterance in a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is an ordered sequence of turns, oldest first.
// Every element carries a valid role and non-empty text.
type Transcript []Turn

// RawPart is one text fragment of a raw history item.
type RawPart struct {
	Text string `json:"text"`
}

// RawItem is one history entry as supplied by the caller. Text may arrive
// as a flat "text" or "content" field, or split across "parts".
type RawItem struct {
	Role    string    `json:"role"`
	Text    string    `json:"text,omitempty"`
	Content string    `json:"content,omitempty"`
	Parts   []RawPart `json:"parts,omitempty"`
}
