// Package interactive provides the interactive command-line interface
// for webconf-device.
package interactive

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/webconf-project/webconf-go/pkg/param"
	"github.com/webconf-project/webconf-go/pkg/portal"
)

// Console handles interactive mode for webconf-device.
type Console struct {
	portal *portal.Portal
	rl     *readline.Instance
	out    io.Writer
}

// New creates a console reading commands from the terminal.
func New(p *portal.Portal) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "webconf> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	c := newConsole(p, rl.Stdout())
	c.rl = rl
	return c, nil
}

func newConsole(p *portal.Portal, out io.Writer) *Console {
	return &Console{portal: p, out: out}
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("show", readline.PcItem("-p")),
		readline.PcItem("get"),
		readline.PcItem("set"),
		readline.PcItem("defaults"),
		readline.PcItem("save"),
		readline.PcItem("dump"),
		readline.PcItem("quit"),
	)
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop. It calls cancel when the user
// quits.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if quit := c.Execute(line); quit {
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the user asked to
// quit.
func (c *Console) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "show", "s":
		c.cmdShow(args)

	case "get", "g":
		c.cmdGet(args)

	case "set":
		// Values may contain spaces.
		c.cmdSet(args, strings.TrimSpace(input[len(parts[0]):]))

	case "defaults":
		c.portal.ApplyDefaults()
		fmt.Fprintln(c.out, "Defaults applied (not saved)")

	case "save":
		if err := c.portal.Save(); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(c.out, "Configuration saved")

	case "dump":
		fmt.Fprint(c.out, hex.Dump(c.portal.Image()))

	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Config Commands:
  show [-p]          - Print the parameter tree (-p reveals passwords)
  get <id>           - Print one value
  set <id> <value>   - Change a value (use 'save' to store it)
  defaults           - Reset all values to their defaults
  save               - Store the current values
  dump               - Hex dump of the storage image

  help               - Show this help
  quit               - Exit`)
}

func (c *Console) cmdShow(args []string) {
	opts := param.DebugOptions{}
	if len(args) > 0 && args[0] == "-p" {
		opts.ShowPasswords = true
	}
	err := c.portal.WithTree(func(tree *param.Tree, root param.Handle) error {
		return tree.DebugToWithOptions(root, c.out, opts)
	})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Console) cmdGet(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: get <id>")
		return
	}
	err := c.portal.WithTree(func(tree *param.Tree, _ param.Handle) error {
		h, ok := tree.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown item: %s", args[0])
		}
		switch kind := tree.Kind(h); {
		case kind == param.KindGroup:
			fmt.Fprintf(c.out, "%s is a group with %d items\n", args[0], len(tree.Children(h)))
		case kind == param.KindPassword:
			fmt.Fprintf(c.out, "%s = <hidden>\n", args[0])
		default:
			fmt.Fprintf(c.out, "%s = %q\n", args[0], tree.Value(h))
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Console) cmdSet(args []string, rest string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: set <id> <value>")
		return
	}
	id := args[0]
	value := strings.TrimSpace(strings.TrimPrefix(rest, id))

	err := c.portal.WithTree(func(tree *param.Tree, _ param.Handle) error {
		h, ok := tree.Lookup(id)
		if !ok {
			return fmt.Errorf("unknown item: %s", id)
		}
		if tree.Kind(h) == param.KindCheckbox {
			value = checkboxValue(value)
		}
		if err := tree.SetValue(h, value); err != nil {
			return err
		}
		if tree.Kind(h) != param.KindPassword && tree.Value(h) != value {
			fmt.Fprintf(c.out, "Truncated to %q\n", tree.Value(h))
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "%s updated (use 'save' to store)\n", id)
}

// checkboxValue maps on/off words to the checkbox storage value.
func checkboxValue(v string) string {
	switch strings.ToLower(v) {
	case "1", "on", "true", "yes", param.CheckboxValue:
		return param.CheckboxValue
	default:
		return ""
	}
}
