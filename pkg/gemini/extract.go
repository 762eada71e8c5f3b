package gemini

import "strings"

// finish reasons that denote a safety refusal.
var safetyFinishReasons = map[string]bool{
	"SAFETY":       true,
	"IMAGE_SAFETY": true,
}

// Extract turns a raw generateContent response into a Result. The branches
// run in a fixed priority order so every response shape classifies the same
// way on every call:
//
//  1. the leading candidate's text parts, concatenated in order
//  2. the top-level text field
//  3. the leading candidate's finish reason (or a prompt-feedback block)
//  4. malformed
//
// Only the leading candidate is consumed; alternatives are ignored.
func Extract(resp *GenerateResponse) Result {
	if resp == nil {
		return failed(ReasonMalformed, "nil response")
	}

	if len(resp.Candidates) > 0 {
		var b strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			b.WriteString(part.Text)
		}
		if text := b.String(); text != "" {
			return ok(text)
		}
	}

	if resp.Text != "" {
		return ok(resp.Text)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return failed(ReasonSafetyBlocked, fb.BlockReason)
	}

	if len(resp.Candidates) > 0 {
		reason := resp.Candidates[0].FinishReason
		switch {
		case reason == "":
			return failed(ReasonMalformed, "candidate without text or finish reason")
		case safetyFinishReasons[reason]:
			return failed(ReasonSafetyBlocked, reason)
		case reason == "STOP":
			return failed(ReasonEmptyOutput, reason)
		default:
			return failed(ReasonOtherStop, reason)
		}
	}

	return failed(ReasonMalformed, "no candidates in response")
}
