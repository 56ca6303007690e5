package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"unicode"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
//
// Commands that take an argument get the rest of the input line after the
// command word, with inner whitespace preserved.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	println(args ...any)
	Scan(ctx context.Context, text string) error
	Camera(ctx context.Context) error
	Flip(ctx context.Context) error
	OCR(ctx context.Context, path string) error
	History(ctx context.Context) error
	Stats(ctx context.Context) error
	Status(ctx context.Context) error
	Theme(ctx context.Context) error
	Quiz(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	Feedback(ctx context.Context, sub string) error
}

const (
	helpLoggedOut = "Available commands: scan [text], camera, flip, ocr <image>, history, stats, status, theme, quiz, feedback [list], register, login, help, exit"
	helpLoggedIn  = "Available commands: scan [text], camera, flip, ocr <image>, history, stats, status, theme, quiz, feedback [list], whoami, avatar <image>, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the SurLink CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The prompt shows what statusFn returns. The
// loop exits on EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Errors returned by handlers are shown to the user as friendly messages and
// never end the loop. All output goes through a.println.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.println(fmt.Sprintf("surlink %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		cmd, rest := splitCommand(line)
		if cmd == "" {
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				a.println(helpLoggedIn)
			} else {
				a.println(helpLoggedOut)
			}

		case "scan":
			cmdErr = a.Scan(ctx, rest)
		case "camera":
			cmdErr = a.Camera(ctx)
		case "flip":
			cmdErr = a.Flip(ctx)
		case "ocr":
			cmdErr = a.OCR(ctx, rest)
		case "history":
			cmdErr = a.History(ctx)
		case "stats":
			cmdErr = a.Stats(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "theme":
			cmdErr = a.Theme(ctx)
		case "quiz":
			cmdErr = a.Quiz(ctx)
		case "feedback":
			cmdErr = a.Feedback(ctx, rest)
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "avatar":
			cmdErr = a.Avatar(ctx, rest)

		case "exit", "quit":
			a.println("Bye!")
			return

		default:
			a.println("Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.println(userMessage(cmdErr))
		}
	}
}

// splitCommand returns the lower-cased first word of line and the remainder
// with only its outer whitespace trimmed.
func splitCommand(line string) (cmd, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), strings.TrimSpace(line[i:])
}
