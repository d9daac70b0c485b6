package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	quantflow "github.com/meaigood001/panda-quantflow"
	httpAdapter "github.com/meaigood001/panda-quantflow/internal/adapters/http"
	redisAdapter "github.com/meaigood001/panda-quantflow/internal/adapters/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog HTTP server",
	Long: `Loads the node catalog and exposes it as a JSON API over HTTP,
with Prometheus metrics and the OpenAPI contract on the same port.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		watch, _ := cmd.Flags().GetBool("watch")

		// One cache instance serves both sides: the HTTP adapter reads
		// through it and the app invalidates it on reload and rescan.
		appOpts := []quantflow.Option{}
		httpOpts := []httpAdapter.Option{}
		if redisAddr != "" {
			cache := redisAdapter.New(redisAddr, "", 0)
			appOpts = append(appOpts, quantflow.WithCache(cache))
			httpOpts = append(httpOpts, httpAdapter.WithCache(cache))
		}

		app, report := newApp(cmd, appOpts...)
		fmt.Printf("Catalog loaded: %d nodes registered, %d units failed\n", app.Registry().Len(), report.Failed)

		handler := httpAdapter.NewHandler(app.Service(), httpOpts...)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		watchCtx, stopWatch := context.WithCancel(cmd.Context())
		defer stopWatch()
		if watch {
			go func() {
				if err := app.Watch(watchCtx); err != nil {
					fmt.Printf("Watcher stopped: %v\n", err)
				}
			}()
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting QuantFlow Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)
			stopWatch()

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("QuantFlow Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for catalog response caching (disabled when empty)")
	serveCmd.Flags().Bool("watch", false, "Rescan plugin directories on file changes")
}
