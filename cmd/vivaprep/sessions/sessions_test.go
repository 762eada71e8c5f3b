package sessionscmder

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vivaprep/vivaprep/pkg/record"
)

var _ = Describe("Sessions Command", func() {
	startServer := func(exchanges []*record.Exchange) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			Expect(r.URL.Path).To(Equal("/sessions"))
			json.NewEncoder(w).Encode(map[string]any{
				"count":    len(exchanges),
				"sessions": exchanges,
			})
		}))
	}

	runCmd := func(serverURL string) (string, error) {
		cmd := NewSessionsCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{serverURL})
		err := cmd.Execute()
		return out.String(), err
	}

	It("prints one line per exchange", func() {
		exchanges := []*record.Exchange{
			record.NewExchange(3, 1, "ok", "Hi there"),
			record.NewExchange(5, 0, "transport-error", ""),
		}
		srv := startServer(exchanges)
		defer srv.Close()

		out, err := runCmd(srv.URL)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("2 recorded session(s)"))
		Expect(out).To(ContainSubstring("turns=3 skipped=1"))
		Expect(out).To(ContainSubstring("transport-error"))
	})

	It("reports when no sessions are recorded", func() {
		srv := startServer(nil)
		defer srv.Close()

		out, err := runCmd(srv.URL)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("No recorded sessions."))
	})

	It("fails on a non-200 response", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := runCmd(srv.URL)
		Expect(err).To(HaveOccurred())
	})

	It("fails when the server is unreachable", func() {
		srv := startServer(nil)
		srv.Close()

		_, err := runCmd(srv.URL)
		Expect(err).To(HaveOccurred())
	})
})
