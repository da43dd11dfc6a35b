package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/condo-console/internal/api"
	"github.com/beesaferoot/condo-console/internal/config"
	"github.com/beesaferoot/condo-console/internal/console"
	"github.com/beesaferoot/condo-console/internal/snapshot"
	"github.com/beesaferoot/condo-console/internal/store"
)

func getLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// getConsole builds a console from the environment. The caller must Close it.
func getConsole(cmd *cobra.Command, observer store.Observer) (*console.Console, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := getLogger(cmd)

	opts := append(cfg.ClientOptions(), api.WithLogger(logger))
	client, err := api.NewClient(cfg.APIURL, opts...)
	if err != nil {
		return nil, nil, err
	}

	c := console.New(console.Config{
		Client:      client,
		WorkerCount: cfg.Workers,
		Confirmer:   getConfirmer(cmd),
		Observer:    observer,
		Logger:      logger,
	})
	return c, cfg, nil
}

func getConfirmer(cmd *cobra.Command) store.Confirmer {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return store.AlwaysConfirm
	}
	return &promptConfirmer{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

func getSnapshotStore(cfg *config.Config) (*snapshot.Store, error) {
	db, err := snapshot.Open(cfg.DatabaseURL, cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}
	return snapshot.NewStore(db)
}

// promptConfirmer asks on the terminal and accepts y or yes.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *promptConfirmer) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// reportRemoval prints the outcome of a confirmed or declined removal.
func reportRemoval(out io.Writer, noun, key string, removed bool, err error) error {
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(out, "Removal cancelled.")
		return nil
	}
	fmt.Fprintf(out, "Removed %s %s\n", noun, key)
	return nil
}

func notFound(noun, key string) error {
	return fmt.Errorf("%s %s: %w", noun, key, store.ErrNotFound)
}
