package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/vivaprep/vivaprep/pkg/gemini"
	"github.com/vivaprep/vivaprep/pkg/transcript"
)

// stubClient returns a client pointed at a stub endpoint serving the given
// handler, plus the server for cleanup.
func stubClient(handler http.HandlerFunc) (*gemini.Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := gemini.NewClient(gemini.Config{Endpoint: srv.URL}, zap.NewNop())
	return client, srv
}

var _ = Describe("Client", func() {
	var ts transcript.Transcript

	BeforeEach(func() {
		ts = transcript.Transcript{
			{Role: transcript.RoleUser, Text: "Hello"},
		}
	})

	It("returns the extracted reply text on success", func() {
		client, srv := stubClient(func(w http.ResponseWriter, r *http.Request) {
			resp := gemini.GenerateResponse{
				Candidates: []gemini.Candidate{{
					Content: gemini.Content{
						Role:  "model",
						Parts: []gemini.Part{{Text: "Hi there"}},
					},
					FinishReason: "STOP",
				}},
			}
			json.NewEncoder(w).Encode(resp)
		})
		defer srv.Close()

		result := client.Generate(context.Background(), ts, "be brief")
		Expect(result.OK()).To(BeTrue())
		Expect(result.Text).To(Equal("Hi there"))
	})

	It("submits the transcript, instruction, and fixed parameters", func() {
		var got map[string]any
		client, srv := stubClient(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(gemini.GenerateResponse{Text: "ok"})
		})
		defer srv.Close()

		result := client.Generate(context.Background(), ts, "interview instructions")
		Expect(result.OK()).To(BeTrue())

		contents := got["contents"].([]any)
		Expect(contents).To(HaveLen(1))

		si := got["systemInstruction"].(map[string]any)
		parts := si["parts"].([]any)
		Expect(parts[0].(map[string]any)["text"]).To(Equal("interview instructions"))

		cfg := got["generationConfig"].(map[string]any)
		Expect(cfg["temperature"]).To(BeNumerically("==", 1.0))
		Expect(cfg["topP"]).To(BeNumerically("==", 0.95))
		Expect(cfg["maxOutputTokens"]).To(BeNumerically("==", 8192))

		safety := got["safetySettings"].([]any)
		Expect(safety).To(HaveLen(4))
		for _, s := range safety {
			Expect(s.(map[string]any)["threshold"]).To(Equal("OFF"))
		}
	})

	It("omits the system instruction when empty", func() {
		var got map[string]any
		client, srv := stubClient(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(gemini.GenerateResponse{Text: "ok"})
		})
		defer srv.Close()

		client.Generate(context.Background(), ts, "")
		Expect(got).NotTo(HaveKey("systemInstruction"))
	})

	It("maps a non-200 status to transport-error without leaking the body", func() {
		client, srv := stubClient(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "quota exceeded for project secret-project"}}`, http.StatusTooManyRequests)
		})
		defer srv.Close()

		result := client.Generate(context.Background(), ts, "")
		Expect(result.Reason).To(Equal(gemini.ReasonTransport))
		Expect(result.Detail).NotTo(ContainSubstring("secret-project"))
	})

	It("maps a connection failure to transport-error", func() {
		client, srv := stubClient(func(w http.ResponseWriter, r *http.Request) {})
		srv.Close() // connection refused from here on

		result := client.Generate(context.Background(), ts, "")
		Expect(result.Reason).To(Equal(gemini.ReasonTransport))
	})

	It("maps an undecodable body to malformed-response", func() {
		client, srv := stubClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		})
		defer srv.Close()

		result := client.Generate(context.Background(), ts, "")
		Expect(result.Reason).To(Equal(gemini.ReasonMalformed))
	})

	Describe("Configured", func() {
		It("requires an API key in hosted mode", func() {
			client := gemini.NewClient(gemini.Config{}, zap.NewNop())
			Expect(client.Configured()).To(BeFalse())

			client = gemini.NewClient(gemini.Config{APIKey: "k"}, zap.NewNop())
			Expect(client.Configured()).To(BeTrue())
		})

		It("requires an access token in vertex mode", func() {
			client := gemini.NewClient(gemini.Config{Project: "p"}, zap.NewNop())
			Expect(client.Configured()).To(BeFalse())

			client = gemini.NewClient(gemini.Config{Project: "p", AccessToken: "t"}, zap.NewNop())
			Expect(client.Configured()).To(BeTrue())
			Expect(client.EndpointMode()).To(Equal("vertex"))
		})
	})
})
