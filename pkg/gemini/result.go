// Package gemini is a thin client for the Gemini generateContent REST API.
// It submits validated transcripts and classifies every response shape the
// API has been observed to produce into a single tagged Result.
package gemini

// Reason classifies why no reply text was produced.
type Reason string

const (
	// ReasonEmptyOutput: generation finished normally but produced no text.
	ReasonEmptyOutput Reason = "empty-output"

	// ReasonSafetyBlocked: the model refused the request on safety grounds.
	ReasonSafetyBlocked Reason = "safety-blocked"

	// ReasonOtherStop: generation stopped for a reason other than normal
	// completion or safety; Detail carries the raw reason.
	ReasonOtherStop Reason = "other-stop-reason"

	// ReasonMalformed: the response carried none of the shapes we know.
	ReasonMalformed Reason = "malformed-response"

	// ReasonTransport: the call itself failed (network, auth, quota).
	ReasonTransport Reason = "transport-error"
)

// Result is the outcome of one generation call: either reply text, or a
// failure reason with optional diagnostic detail.
type Result struct {
	Text   string
	Reason Reason
	Detail string
}

// OK reports whether the result carries reply text.
func (r Result) OK() bool {
	return r.Reason == ""
}

func ok(text string) Result {
	return Result{Text: text}
}

func failed(reason Reason, detail string) Result {
	return Result{Reason: reason, Detail: detail}
}
