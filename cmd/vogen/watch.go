package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/vogen/compiler/gen"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Generate code, then regenerate whenever a declaration file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			s, err := a.session()
			if err != nil {
				return err
			}
			paths := a.paths(args)
			a.log.Info("watching", zap.Strings("paths", paths), zap.Stringer("session", s.ID()))
			return s.Watch(ctx, paths, a.v.GetDuration("debounce"), func(res *gen.Result, err error) {
				if res != nil {
					printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
				}
				if err != nil {
					a.log.Error("generate", zap.Error(err))
					return
				}
				stats := s.Stats()
				a.log.Info("generated",
					zap.Int("artifacts", len(res.Artifacts)),
					zap.Int64("cache_hits", stats.Hits),
					zap.Int64("store_hits", stats.StoreHits),
				)
			})
		},
	}
	cmd.Flags().Duration("debounce", 0, "quiet period after a change before regenerating")
	return cmd
}
