package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"todolist/internal/api"
	"todolist/internal/service"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:    a.cfg.HTTPAddr,
				Handler: api.NewRouter(a.projects, a.tasks),
			}

			if a.cfg.AutocloseInterval > 0 {
				scheduler := service.NewSchedulerService(time.Local)
				if _, err := scheduler.ScheduleInterval(a.cfg.AutocloseInterval, func() {
					jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
					defer cancel()
					closed, err := a.tasks.AutoCloseOverdue(jobCtx)
					if err != nil {
						log.Printf("autoclose: %v", err)
					}
					if closed > 0 {
						log.Printf("autoclose: closed %d overdue task(s)", closed)
					}
				}); err != nil {
					return fmt.Errorf("schedule autoclose: %w", err)
				}
				scheduler.Start()
				defer scheduler.Stop()
			}

			errCh := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()
			log.Printf("TodoList API listening on %s", a.cfg.HTTPAddr)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			log.Println("Shutdown complete.")
			return nil
		},
	}
}
