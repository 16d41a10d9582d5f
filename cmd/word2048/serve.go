package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/word2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Word 2048 SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Statistics and preferences are
stored per server (all users share the same database).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.word2048/host_key

Examples:
  word2048 serve                           # Listen on :23234 with auto-generated key
  word2048 serve --ssh :2222               # Listen on port 2222
  word2048 serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closer := newLogger(cfg, "word2048-ssh", false)
	defer closer.Close()

	srvCfg := tui.SSHServerConfigFrom(cfg.Server)
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	store, err := openStoreOrWarn(cfg, logger)
	if store != nil {
		defer store.Close()
	} else {
		logger.Warn("running without database", "error", err)
	}

	deps := tui.Deps{
		Config: cfg,
		Vocab:  loadVocab(cfg, logger),
		Store:  store,
		Logger: logger,
	}
	server, err := tui.NewSSHServer(srvCfg, deps)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting Word 2048 SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatalf("server: %v", err)
	}
}
