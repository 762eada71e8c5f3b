package main

import (
	"os"

	"github.com/spf13/cobra"

	servecmder "github.com/vivaprep/vivaprep/cmd/vivaprep/serve"
	sessionscmder "github.com/vivaprep/vivaprep/cmd/vivaprep/sessions"
)

func main() {
	root := &cobra.Command{
		Use:   "vivaprep",
		Short: "Interview-practice chat backend",
		Long: `vivaprep serves a turn-based interview-practice conversation between
a web front end and a hosted generative model.`,
		SilenceUsage: true,
	}

	root.AddCommand(servecmder.NewServeCmd())
	root.AddCommand(sessionscmder.NewSessionsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
