package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/listvision-mcp/internal/rows"
)

// rows <op>...: apply append:<label>, remove:<index> and move:<from>:<to>
// to the seed list, printing the change and the rows after each step.
func rowsCmd(a *app) *cobra.Command {
	var seed []string

	cmd := &cobra.Command{
		Use:   "rows <op>...",
		Short: "Apply list operations (append:x, remove:i, move:s:d) and print each step",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.newController()
			if cmd.Flags().Changed("seed") {
				c = rows.NewController(seed)
			}
			out := cmd.OutOrStdout()

			var changes []rows.Change
			c.Subscribe(rows.ObserverFunc(func(ch rows.Change) {
				changes = append(changes, ch)
			}))

			printRows(out, "", c.Rows())
			for _, op := range args {
				changes = changes[:0]
				if err := applyOp(c, op); err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
				summary := "no change"
				if len(changes) > 0 {
					parts := make([]string, len(changes))
					for i, ch := range changes {
						parts[i] = ch.String()
					}
					summary = strings.Join(parts, ", ")
				}
				printRows(out, fmt.Sprintf("%s (%s)", op, summary), c.Rows())
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&seed, "seed", nil, "start from these rows instead of the configured seed")
	return cmd
}

func printRows(w io.Writer, heading string, items []string) {
	if heading != "" {
		fmt.Fprintln(w, heading)
	}
	fmt.Fprintf(w, "  [%s]\n", strings.Join(items, " "))
}

func applyOp(c *rows.Controller, op string) error {
	name, rest, _ := strings.Cut(op, ":")
	switch name {
	case "append":
		_, err := c.Append(rest)
		return err
	case "remove":
		index, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("bad index %q", rest)
		}
		_, err = c.RemoveAt(index)
		return err
	case "move":
		from, to, ok := strings.Cut(rest, ":")
		if !ok {
			return fmt.Errorf("want move:<from>:<to>")
		}
		src, err := strconv.Atoi(from)
		if err != nil {
			return fmt.Errorf("bad index %q", from)
		}
		dst, err := strconv.Atoi(to)
		if err != nil {
			return fmt.Errorf("bad index %q", to)
		}
		return c.MoveTo(src, dst)
	default:
		return fmt.Errorf("unknown operation %q", name)
	}
}
