package transcript

import (
	"errors"
	"strings"
)

var (
	// ErrMissingHistory means the request carried no history field at all.
	ErrMissingHistory = errors.New("history is missing")

	// ErrEmptyHistory means the history field was present but empty.
	ErrEmptyHistory = errors.New("history is empty")

	// ErrNoValidContent means every supplied item was dropped during
	// normalization, leaving nothing to send to the model.
	ErrNoValidContent = errors.New("history contains no valid content")
)

// Normalize validates raw history items into a Transcript, preserving the
// relative order of items that survive. Items with an unrecognized role or
// no non-empty text are dropped, not rejected; the second return value is
// the number of dropped items. A nil input is a missing history, an empty
// non-nil input is an empty one.
func Normalize(items []RawItem) (Transcript, int, error) {
	if items == nil {
		return nil, 0, ErrMissingHistory
	}
	if len(items) == 0 {
		return nil, 0, ErrEmptyHistory
	}

	ts := make(Transcript, 0, len(items))
	skipped := 0

	for _, item := range items {
		role, ok := canonicalRole(item.Role)
		if !ok {
			skipped++
			continue
		}

		text := itemText(item)
		if strings.TrimSpace(text) == "" {
			skipped++
			continue
		}

		ts = append(ts, Turn{Role: role, Text: text})
	}

	if len(ts) == 0 {
		return nil, skipped, ErrNoValidContent
	}

	return ts, skipped, nil
}

// canonicalRole maps a raw role string to one of the two recognized roles.
// Matching is case-insensitive; "assistant" and "bot" are accepted aliases
// for the model side. Unrecognized roles report ok=false.
func canonicalRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user":
		return RoleUser, true
	case "model", "assistant", "bot":
		return RoleModel, true
	default:
		return "", false
	}
}

// itemText locates the textual content of a raw item. Parts take precedence
// and concatenate in order with no separator, matching how multi-part
// messages are reassembled on the model side.
func itemText(item RawItem) string {
	if len(item.Parts) > 0 {
		var b strings.Builder
		for _, p := range item.Parts {
			b.WriteString(p.Text)
		}
		return b.String()
	}
	if item.Text != "" {
		return item.Text
	}
	return item.Content
}
