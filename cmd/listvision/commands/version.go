package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/listvision-mcp/internal/ocr"
)

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "listvision %s\n", a.info.Version)
			fmt.Fprintf(out, "  Build time: %s\n", a.info.BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", a.info.GitCommit)
			if ocr.Available() {
				fmt.Fprintf(out, "  Tesseract:  %s\n", ocr.Version())
			} else {
				fmt.Fprintln(out, "  Tesseract:  not linked")
			}
			return nil
		},
	}
}
