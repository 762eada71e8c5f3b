package servecmder

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vivaprep/vivaprep/pkg/logger"
	"github.com/vivaprep/vivaprep/server"
)

const serveLongDesc string = `Run the chat server.

Configuration is resolved in order: TOML file, environment variables,
then flags. Credentials come from GEMINI_API_KEY, or from
GOOGLE_CLOUD_PROJECT + GOOGLE_ACCESS_TOKEN for a Vertex endpoint.
A .env file in the working directory is loaded if present.

Examples:
  vivaprep serve
  vivaprep serve --listen :9090 --db ~/.vivaprep/exchanges.db
  vivaprep serve --config /etc/vivaprep.toml --debug`

const serveShortDesc string = "Run the chat server"

const defaultListenAddr = ":8080"

type serveCommander struct {
	listenAddr string
	configPath string
	dbPath     string
	debug      bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", "", "Address to listen on (default :8080)")
	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to TOML config file")
	cmd.Flags().StringVar(&cmder.dbPath, "db", "", "Path to SQLite exchange log (default: in-memory)")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run() error {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	if c.listenAddr != "" {
		cfg.ListenAddr = c.listenAddr
	}
	if c.dbPath != "" {
		cfg.DBPath = c.dbPath
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}

	log := logger.New(c.debug)
	defer log.Sync()

	log.Info("vivaprep starting",
		zap.String("listen", cfg.ListenAddr),
		zap.Bool("debug", c.debug),
	)

	s, err := server.New(cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Run()
}
