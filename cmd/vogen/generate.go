package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/vogen/compiler/gen"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "generate [paths...]",
		Aliases: []string{"gen"},
		Short:   "Generate code for the declaration files of the given files or directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			s, err := a.session()
			if err != nil {
				return err
			}
			res, err := s.Generate(ctx, a.paths(args)...)
			if res != nil {
				printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
				a.log.Info("generated", zap.Int("artifacts", len(res.Artifacts)))
			}
			return err
		},
	}
}

func printDiagnostics(w io.Writer, ds gen.Diagnostics) {
	for _, d := range ds {
		fmt.Fprintln(w, d)
	}
}
