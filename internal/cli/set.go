package cli

import (
	"os"

	"github.com/spf13/cobra"

	"arrayfile"
	"arrayfile/value"
)

func newSetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set <file> <path> <value>",
		Short: "Write one value into the document and print the result",
		Long: `set loads a module, writes one value at the given path and prints the
regenerated source. Paths address items by index and fields by key, for
example "2.name" or "[0].tags.1". The value argument is decoded as a literal
("text", 42, true, null); anything that does not decode is taken as a plain
string.`,
		Args: cobra.ExactArgs(3),
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

			path, err := arrayfile.ParsePath(args[1])
			if err != nil {
				return err
			}

			v := parseLiteralArg(args[2])
			logger.Debug("writing value", "path", path, "kind", v.Kind())

			doc, err = doc.Write(path, v)
			if err != nil {
				return err
			}

			rendered := arrayfile.Render(doc)
			if output != "" {
				return os.WriteFile(output, rendered, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(rendered)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file")
	return cmd
}

// parseLiteralArg decodes a shell argument as a scalar or composite literal,
// falling back to a plain string so `set data.ts 0.name Alice` works without
// quoting gymnastics.
func parseLiteralArg(arg string) value.Value {
	if v, err := arrayfile.DecodeLiteral([]byte(arg)); err == nil {
		return v
	}
	return &value.String{Val: arg}
}
