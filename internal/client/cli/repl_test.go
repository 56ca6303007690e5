package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/surlink/internal/client/capture"
	"github.com/dmitrijs2005/surlink/internal/client/services"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	args     []string
	errs     map[string]error

	mu     sync.Mutex
	output []string
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return f.errs[name]
}

func (f *fakeExec) println(a ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.output = append(f.output, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }

func (f *fakeExec) Scan(_ context.Context, text string) error   { return f.record("scan", text) }
func (f *fakeExec) Camera(context.Context) error                 { return f.record("camera", "") }
func (f *fakeExec) Flip(context.Context) error                   { return f.record("flip", "") }
func (f *fakeExec) OCR(_ context.Context, path string) error     { return f.record("ocr", path) }
func (f *fakeExec) History(context.Context) error                { return f.record("history", "") }
func (f *fakeExec) Stats(context.Context) error                  { return f.record("stats", "") }
func (f *fakeExec) Status(context.Context) error                 { return f.record("status", "") }
func (f *fakeExec) Theme(context.Context) error                  { return f.record("theme", "") }
func (f *fakeExec) Quiz(context.Context) error                   { return f.record("quiz", "") }
func (f *fakeExec) Register(context.Context) error               { return f.record("register", "") }
func (f *fakeExec) Login(context.Context) error                  { return f.record("login", "") }
func (f *fakeExec) Logout(context.Context) error                 { return f.record("logout", "") }
func (f *fakeExec) WhoAmI(context.Context) error                 { return f.record("whoami", "") }
func (f *fakeExec) Avatar(_ context.Context, path string) error  { return f.record("avatar", path) }
func (f *fakeExec) Feedback(_ context.Context, sub string) error { return f.record("feedback", sub) }

func TestRunREPL_Dispatch(t *testing.T) {
	f := &fakeExec{}

	input := "scan hello there\ncamera\nflip\nocr /tmp/a.png\nhistory\nstats\nstatus\ntheme\nquiz\n" +
		"feedback list\nregister\nlogin\nwhoami\navatar pic.png\nlogout\n\nexit\n"
	runREPL(context.Background(), f, func() string { return "[Online]" }, rdr(input))

	assert.Equal(t, []string{
		"scan", "camera", "flip", "ocr", "history", "stats", "status", "theme", "quiz",
		"feedback", "register", "login", "whoami", "avatar", "logout",
	}, f.calls)
	assert.Equal(t, "hello there", f.args[0])
	assert.Equal(t, "/tmp/a.png", f.args[3])
	assert.Equal(t, "list", f.args[9])
	assert.Equal(t, "pic.png", f.args[13])

	require.NotEmpty(t, f.output)
	assert.Equal(t, "surlink [Online]> ", f.output[0])
	assert.Equal(t, "Bye!", f.output[len(f.output)-1])
}

func TestRunREPL_ArgumentWhitespaceKept(t *testing.T) {
	f := &fakeExec{}

	input := "SCAN   Dear  customer,\tverify   now  \nocr /tmp/my  scans/shot 1.png\navatar  ./a  b.png\n"
	runREPL(context.Background(), f, func() string { return "" }, rdr(input))

	require.Equal(t, []string{"scan", "ocr", "avatar"}, f.calls)
	assert.Equal(t, "Dear  customer,\tverify   now", f.args[0])
	assert.Equal(t, "/tmp/my  scans/shot 1.png", f.args[1])
	assert.Equal(t, "./a  b.png", f.args[2])
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		line, cmd, rest string
	}{
		{"", "", ""},
		{"   ", "", ""},
		{"help", "help", ""},
		{"Scan  a  b ", "scan", "a  b"},
		{"feedback\tlist", "feedback", "list"},
	}
	for _, tt := range tests {
		cmd, rest := splitCommand(tt.line)
		assert.Equal(t, tt.cmd, cmd, tt.line)
		assert.Equal(t, tt.rest, rest, tt.line)
	}
}

func TestRunREPL_Help(t *testing.T) {
	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, rdr("help\n"))
	assert.Contains(t, f.output, helpLoggedOut)

	f = &fakeExec{loggedIn: true}
	runREPL(context.Background(), f, func() string { return "" }, rdr("HELP\n"))
	assert.Contains(t, f.output, helpLoggedIn)
}

func TestRunREPL_ErrorsAreShown(t *testing.T) {
	f := &fakeExec{errs: map[string]error{
		"login":  fmt.Errorf("login: %w", services.ErrInvalidCredentials),
		"camera": capture.ErrCameraUnavailable,
		"stats":  errors.New("boom"),
	}}

	runREPL(context.Background(), f, func() string { return "" }, rdr("login\ncamera\nstats\nfrobnicate\n"))

	assert.Contains(t, f.output, "Invalid email or password")
	assert.Contains(t, f.output, "Camera access denied or not available.")
	assert.Contains(t, f.output, "Error: boom")
	assert.Contains(t, f.output, "Unknown command: frobnicate")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	f := &fakeExec{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runREPL(ctx, f, func() string { return "" }, rdr("scan x\n"))

	assert.Empty(t, f.calls)
}
