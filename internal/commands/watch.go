package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/beesaferoot/condo-console/internal/metrics"
)

func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh every collection periodically",
		Long:  `Reloads every collection on a fixed interval and prints one summary line per pass. With --metrics-addr the store metrics are served at /metrics until the command is interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			addr, _ := cmd.Flags().GetString("metrics-addr")
			if interval <= 0 {
				return fmt.Errorf("interval must be positive")
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			collector := metrics.New()
			if err := collector.Register(reg); err != nil {
				return err
			}

			c, _, err := getConsole(cmd, collector)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			logger := getLogger(cmd)

			if addr != "" {
				ln, err := net.Listen("tcp", addr)
				if err != nil {
					return fmt.Errorf("failed to listen on %s: %v", addr, err)
				}
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
				srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server stopped", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				fmt.Fprintf(cmd.OutOrStdout(), "Serving metrics on http://%s/metrics\n", ln.Addr())
			}

			out := cmd.OutOrStdout()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				err := c.Refresh(ctx)
				if ctx.Err() != nil {
					return nil
				}
				status := "ok"
				if err != nil {
					status = err.Error()
				}
				fmt.Fprintf(out, "%s  apartments=%d residents=%d accounts=%d employees=%d  %s\n",
					time.Now().Format(time.RFC3339),
					c.Apartments.Len(), c.Residents.Len(), c.Accounts.Len(), c.Employees.Len(),
					status,
				)

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	cmd.Flags().Duration("interval", 30*time.Second, "Time between refreshes")
	cmd.Flags().String("metrics-addr", "", "Serve prometheus metrics on this address, e.g. :9090")
	return cmd
}
