package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"arrayfile"
	"arrayfile/value"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Scan and decode a module, reporting what was found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loading module", "file", args[0], "bytes", len(src))

			doc, err := arrayfile.LoadContext(cmd.Context(), args[0], src)
			if err != nil {
				return err
			}

			quoting := "bare"
			if doc.QuotedKeys {
				quoting = "quoted"
			}
			importLines := 0
			if doc.ImportHeader != "" {
				importLines = strings.Count(doc.ImportHeader, "\n") + 1
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "export:  %s\n", doc.ExportName)
			fmt.Fprintf(out, "items:   %d\n", doc.Len())
			fmt.Fprintf(out, "keys:    %s\n", strings.Join(itemKeys(doc), ", "))
			fmt.Fprintf(out, "quoting: %s\n", quoting)
			fmt.Fprintf(out, "imports: %d line(s)\n", importLines)
			return nil
		},
	}
}

// itemKeys returns the key schema of the first item, or a placeholder for
// scalar items.
func itemKeys(doc *arrayfile.Document) []string {
	if doc.Len() == 0 {
		return []string{"(empty)"}
	}
	if obj, ok := doc.Root.Elems[0].(*value.Object); ok {
		return obj.Keys()
	}
	return []string{"(" + string(doc.Root.Elems[0].Kind()) + " items)"}
}
