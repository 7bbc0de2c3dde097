package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Command is a verb of the interactive loop.
type Command int

const (
	CommandNone Command = iota
	CommandFilename
	CommandRewriteFile
	CommandLogSyntax
)

// String returns the command token as typed on the command line.
func (c Command) String() string {
	switch c {
	case CommandFilename:
		return ":filename:"
	case CommandRewriteFile:
		return ":rewrite-file:"
	case CommandLogSyntax:
		return ":logsyntax:"
	default:
		return "none"
	}
}

// ParseCommand maps a command line to its Command.
func ParseCommand(line string) Command {
	switch strings.TrimSpace(line) {
	case ":filename:":
		return CommandFilename
	case ":rewrite-file:":
		return CommandRewriteFile
	case ":logsyntax:":
		return CommandLogSyntax
	default:
		return CommandNone
	}
}

const maxLineSize = 4 << 20

// Server runs the interactive command loop: a command line followed by one
// input line. :filename: prints a file and its rewrite, :rewrite-file:
// rewrites a file in place and :logsyntax: dumps the syntax tree of the
// input text.
type Server struct {
	runner *Runner
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewServer creates a Server reading commands from in and answering on out.
func NewServer(runner *Runner, in io.Reader, out io.Writer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{runner: runner, in: in, out: out, logger: logger}
}

// Serve runs until the input ends or ctx is done. Failures of single
// commands are reported and the loop continues.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}

		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	fmt.Fprintln(s.out, "listening for input...")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "\ninput:\n\n")

		cmdLine, ok := next()
		if !ok {
			return scanner.Err()
		}

		if strings.TrimSpace(cmdLine) == "" {
			fmt.Fprintln(s.out, "invalid input")
			continue
		}

		input, ok := next()
		if !ok {
			return scanner.Err()
		}

		if strings.TrimSpace(input) == "" {
			fmt.Fprintln(s.out, "invalid input")
			continue
		}

		s.dispatch(ctx, ParseCommand(cmdLine), cmdLine, strings.TrimSpace(input))
	}
}

func (s *Server) dispatch(ctx context.Context, cmd Command, cmdLine, input string) {
	var err error

	switch cmd {
	case CommandFilename:
		fmt.Fprintln(s.out, "log rewrite...")
		err = s.runner.Print(ctx, input, s.out)

	case CommandRewriteFile:
		var res *FileResult
		res, err = s.runner.RewriteFile(ctx, input, input)
		if err == nil {
			s.reportRewrite(res)
		}

	case CommandLogSyntax:
		fmt.Fprint(s.out, "\nparse for log syntax...\n\n")
		err = s.runner.Rewriter().Loader().DumpTree(ctx, []byte(input), s.out)

	default:
		fmt.Fprintf(s.out, "unknown command %q\n", strings.TrimSpace(cmdLine))
		return
	}

	if err != nil {
		s.logger.Error("command failed", zap.Stringer("command", cmd), zap.Error(err))
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Server) reportRewrite(res *FileResult) {
	switch {
	case res.Target != "":
		fmt.Fprintf(s.out, "\nSuccess.\nRewrote %s\n", res.Target)
	case res.Content == nil:
		fmt.Fprintf(s.out, "[Warning] no class declaration in %s, file left untouched\n", res.Path)
	default:
		fmt.Fprintf(s.out, "Unchanged %s\n", res.Path)
	}
}
