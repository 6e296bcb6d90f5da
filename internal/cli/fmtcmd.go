package cli

import (
	"os"

	"github.com/spf13/cobra"

	"arrayfile"
)

func newFmtCmd() *cobra.Command {
	var (
		write  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Round-trip a module through the re-serializer",
		Long:  `fmt loads a module and prints the regenerated source text: import header, export statement and the array literal in canonical two-space form. With -w the file is rewritten in place.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := arrayfile.LoadContext(cmd.Context(), args[0], src)
			if err != nil {
				return err
			}

			rendered := arrayfile.Render(doc)
			switch {
			case write:
				logger.Debug("rewriting module in place", "file", args[0])
				return os.WriteFile(args[0], rendered, 0o644)
			case output != "":
				logger.Debug("writing module", "file", output)
				return os.WriteFile(output, rendered, 0o644)
			default:
				_, err := cmd.OutOrStdout().Write(rendered)
				return err
			}
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file")
	return cmd
}
