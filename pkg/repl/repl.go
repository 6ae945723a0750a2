// Package repl implements the interactive Lox prompt.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edwingeng/deque"
	"github.com/fatih/color"

	"github.com/longkhanh1987/CS-4080-HW/pkg/config"
	"github.com/longkhanh1987/CS-4080-HW/pkg/help"
	"github.com/longkhanh1987/CS-4080-HW/pkg/history"
	"github.com/longkhanh1987/CS-4080-HW/pkg/runtime"
)

const defaultHistoryCount = 10

// Repl reads chunks from in and runs them against a single runtime, so
// definitions persist for the whole session.
type Repl struct {
	rt    *runtime.Runtime
	in    io.Reader
	out   io.Writer
	errw  io.Writer
	cfg   *config.Config
	store *history.Store

	pending     deque.Deque
	bal         balance
	promptColor *color.Color
}

// Option configures a Repl.
type Option func(*Repl)

// WithStderr sets where session warnings go. Default: os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(r *Repl) {
		r.errw = w
	}
}

// New creates a REPL. A nil cfg uses config.Default; a nil store
// disables history.
func New(rt *runtime.Runtime, in io.Reader, out io.Writer, cfg *config.Config, store *history.Store, opts ...Option) *Repl {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Repl{
		rt:          rt,
		in:          in,
		out:         out,
		errw:        os.Stderr,
		cfg:         cfg,
		store:       store,
		pending:     deque.NewDeque(),
		promptColor: color.New(color.FgCyan),
	}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.Color {
		r.promptColor.EnableColor()
	} else {
		r.promptColor.DisableColor()
	}
	return r
}

// Run reads lines until EOF, a :quit command or ctx is done. A chunk
// still open at EOF is discarded.
func (r *Repl) Run(ctx context.Context) error {
	sc := bufio.NewScanner(r.in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.prompt()
		if !sc.Scan() {
			r.discard()
			if err := sc.Err(); err != nil {
				return fmt.Errorf("repl: read: %w", err)
			}
			return nil
		}
		line := sc.Text()

		if r.pending.Empty() && strings.HasPrefix(strings.TrimSpace(line), ":") {
			if quit := r.command(strings.TrimSpace(line)); quit {
				return nil
			}
			continue
		}

		r.pending.PushBack(line)
		r.bal.feed(line)
		if r.bal.open() {
			continue
		}
		r.dispatch(r.drain())
	}
}

func (r *Repl) prompt() {
	p := r.cfg.Prompt
	if !r.pending.Empty() {
		p = r.cfg.ContinuationPrompt
	}
	r.promptColor.Fprint(r.out, p)
}

// drain joins the queued lines into one chunk and resets the balance.
func (r *Repl) drain() string {
	lines := make([]string, 0, r.pending.Len())
	for !r.pending.Empty() {
		lines = append(lines, r.pending.PopFront().(string))
	}
	r.bal.reset()
	return strings.Join(lines, "\n")
}

func (r *Repl) discard() {
	for !r.pending.Empty() {
		r.pending.PopFront()
	}
	r.bal.reset()
}

func (r *Repl) dispatch(chunk string) {
	if strings.TrimSpace(chunk) == "" {
		return
	}
	if r.store != nil {
		if err := r.store.Append(chunk); err != nil {
			fmt.Fprintf(r.errw, "lox: %v; history disabled\n", err)
			r.store = nil
		}
	}
	r.rt.RunChunk(chunk)
}

// command runs a ':' command and reports whether the session should end.
func (r *Repl) command(line string) bool {
	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "quit", "q", "exit":
		return true
	case "help", "h":
		r.showHelp(fields[1:])
	case "history":
		r.showHistory(fields[1:])
	default:
		fmt.Fprintf(r.out, "unknown command: :%s\n", fields[0])
	}
	return false
}

func (r *Repl) showHelp(args []string) {
	if len(args) == 0 {
		fmt.Fprint(r.out, help.QUICKREF)
		return
	}
	_, content, err := help.MatchTopic(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s\nAvailable topics: %s\n", err, strings.Join(help.TopicList, ", "))
		return
	}
	fmt.Fprint(r.out, content)
}

func (r *Repl) showHistory(args []string) {
	if r.store == nil {
		fmt.Fprintln(r.out, "history is disabled")
		return
	}
	n := defaultHistoryCount
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			fmt.Fprintf(r.out, "invalid count: %s\n", args[0])
			return
		}
		n = v
	}
	entries, err := r.store.Recent(n)
	if err != nil {
		fmt.Fprintf(r.errw, "lox: %v\n", err)
		return
	}
	// Recent is newest first; list oldest first like a shell.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		body := strings.ReplaceAll(e.Source, "\n", "\n      ")
		fmt.Fprintf(r.out, "%4d  %s\n", e.ID, body)
	}
}
