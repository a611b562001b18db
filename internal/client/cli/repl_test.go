package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Credits(ctx context.Context, args []string) error  { return f.record("credits", args) }
func (f *fakeExec) Grant(ctx context.Context, args []string) error    { return f.record("grant", args) }
func (f *fakeExec) Generate(ctx context.Context, args []string) error { return f.record("generate", args) }
func (f *fakeExec) Edit(ctx context.Context, args []string) error     { return f.record("edit", args) }
func (f *fakeExec) Open(ctx context.Context, args []string) error     { return f.record("open", args) }
func (f *fakeExec) List(ctx context.Context) error                    { return f.record("list", nil) }
func (f *fakeExec) Show(ctx context.Context, args []string) error     { return f.record("show", args) }
func (f *fakeExec) Export(ctx context.Context, args []string) error   { return f.record("export", args) }
func (f *fakeExec) History(ctx context.Context, args []string) error  { return f.record("history", args) }
func (f *fakeExec) Device(ctx context.Context, args []string) error   { return f.record("device", args) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"generate a login screen",
		"login",
		"help",
		"g a login screen",
		"edit @abc123 make it dark",
		"credits refresh",
		"grant 5",
		"l",
		"show edited",
		"open abc124",
		"export s3",
		"history 3",
		"device android:412x915",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"login", "generate", "edit", "credits", "grant", "list", "show",
		"open", "export", "history", "device", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"a", "login", "screen"}, exec.args[1])
	assert.Equal(t, []string{"@abc123", "make", "it", "dark"}, exec.args[2])

	assert.Contains(t, *out, helpSignedOut)
	assert.Contains(t, *out, helpSignedIn)
	assert.Contains(t, *out, "Please log in first.")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_SignedOutOnlyAllowsLoginAndDevice(t *testing.T) {
	captureOutput(t)

	input := strings.NewReader("list\ncredits\ndevice\nquit\n")
	exec := &fakeExec{loggedIn: false}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"device"}, exec.calls)
}

func TestRunREPL_EOFEnds(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("\n   \n")))

	assert.Empty(t, exec.calls)
}
