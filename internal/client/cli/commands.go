package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const shellPrompt = "> "

// Exec runs one shell command line. quit is true when the user asked to exit.
func (c *Cli) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch command, args := strings.ToLower(fields[0]), fields[1:]; command {
	case "add":
		// Имя может содержать пробелы, возраст всегда последним словом
		if len(args) < 2 {
			return false, fmt.Errorf("usage: add <name> <age>")
		}
		return false, c.Add(ctx, strings.Join(args[:len(args)-1], " "), args[len(args)-1])
	case "del", "delete", "rm":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: del <id>")
		}
		return false, c.Delete(ctx, args[0])
	case "list", "ls":
		c.List()
		return false, nil
	case "pending":
		return false, c.Pending(ctx)
	case "status":
		return false, c.Status(ctx, c.serverState())
	case "help", "?":
		return false, c.render(helpTemplate, nil)
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command: %s (type 'help')", command)
	}
}

type readResult struct {
	line string
	err  error
}

// Shell reads commands until quit, EOF or ctx is done.
// Пока shell активен, каждый refresh движка перерисовывает таблицу.
func (c *Cli) Shell(ctx context.Context) error {
	c.live.Store(true)
	defer c.live.Store(false)

	if err := c.render(helpTemplate, nil); err != nil {
		return err
	}
	c.List()

	done := make(chan struct{})
	defer close(done)
	lines := make(chan readResult)

	// ReadLine блокируется, поэтому читаем в отдельной горутине
	go func() {
		for {
			line, err := c.io.ReadLine(shellPrompt)
			select {
			case lines <- readResult{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-lines:
			if r.err != nil {
				if errors.Is(r.err, io.EOF) {
					return nil
				}
				return fmt.Errorf("failed to read command: %w", r.err)
			}
			quit, err := c.Exec(ctx, r.line)
			if err != nil {
				c.io.Printf("Error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}
