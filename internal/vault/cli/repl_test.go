package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                         { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error       { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error          { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error         { return s.record("logout") }
func (s *stubExec) AccountInfo(ctx context.Context) error    { return s.record("info") }
func (s *stubExec) UpdateAccount(ctx context.Context) error  { return s.record("editaccount") }
func (s *stubExec) ChangePassword(ctx context.Context) error { return s.record("passwd") }
func (s *stubExec) DeleteAccount(ctx context.Context) error  { return s.record("delaccount") }
func (s *stubExec) SetRootSecret(ctx context.Context) error  { return s.record("setroot") }
func (s *stubExec) RotateRootSecret(ctx context.Context) error {
	return s.record("rotate")
}
func (s *stubExec) AddCategory(ctx context.Context) error    { return s.record("addcat") }
func (s *stubExec) ListCategories(ctx context.Context) error { return s.record("cats") }
func (s *stubExec) EditCategory(ctx context.Context) error   { return s.record("editcat") }
func (s *stubExec) DeleteCategory(ctx context.Context) error { return s.record("delcat") }
func (s *stubExec) AddRecord(ctx context.Context) error      { return s.record("add") }
func (s *stubExec) ListRecords(ctx context.Context) error    { return s.record("list") }
func (s *stubExec) ShowRecord(ctx context.Context) error     { return s.record("show") }
func (s *stubExec) EditRecord(ctx context.Context) error     { return s.record("edit") }
func (s *stubExec) DeleteRecord(ctx context.Context) error   { return s.record("del") }
func (s *stubExec) ShowHistory(ctx context.Context) error    { return s.record("history") }
func (s *stubExec) Generate(ctx context.Context) error       { return s.record("gen") }
func (s *stubExec) Backup(ctx context.Context) error         { return s.record("backup") }
func (s *stubExec) Restore(ctx context.Context) error        { return s.record("restore") }
func (s *stubExec) ShowLogs(ctx context.Context) error       { return s.record("logs") }

func runScript(t *testing.T, stub *stubExec, script string) []string {
	t.Helper()

	var out []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		for _, a := range args {
			if s, ok := a.(string); ok {
				out = append(out, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "" }, scanner)
	return out
}

func TestREPL_DispatchesCommands(t *testing.T) {
	stub := &stubExec{loggedIn: true}
	runScript(t, stub, "list\nadd\nshow\nrotate\nbackup\nexit\n")
	assert.Equal(t, []string{"list", "add", "show", "rotate", "backup"}, stub.calls)
}

func TestREPL_ShortAliases(t *testing.T) {
	stub := &stubExec{loggedIn: true}
	runScript(t, stub, "l\nquit\n")
	assert.Equal(t, []string{"list"}, stub.calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	stub := &stubExec{}
	out := runScript(t, stub, "frobnicate\nexit\n")
	assert.Empty(t, stub.calls)
	assert.Contains(t, out, "Unknown command:")
}

func TestREPL_EmptyLinesIgnored(t *testing.T) {
	stub := &stubExec{}
	runScript(t, stub, "\n\nlogin\nexit\n")
	assert.Equal(t, []string{"login"}, stub.calls)
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	stub := &stubExec{}
	runScript(t, stub, "login")
	assert.Equal(t, []string{"login"}, stub.calls)
}

func TestREPL_HelpVariesWithLogin(t *testing.T) {
	out := runScript(t, &stubExec{}, "help\nexit\n")
	joined := strings.Join(out, "\n")
	assert.Contains(t, joined, "register")
	assert.NotContains(t, joined, "rotate")

	out = runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	joined = strings.Join(out, "\n")
	assert.Contains(t, joined, "rotate")
}
