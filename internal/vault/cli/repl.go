package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AccountInfo(ctx context.Context) error
	UpdateAccount(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	SetRootSecret(ctx context.Context) error
	RotateRootSecret(ctx context.Context) error
	AddCategory(ctx context.Context) error
	ListCategories(ctx context.Context) error
	EditCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context) error
	AddRecord(ctx context.Context) error
	ListRecords(ctx context.Context) error
	ShowRecord(ctx context.Context) error
	EditRecord(ctx context.Context) error
	DeleteRecord(ctx context.Context) error
	ShowHistory(ctx context.Context) error
	Generate(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
	ShowLogs(ctx context.Context) error
}

// Root runs the interactive loop until EOF or exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to passvault (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on scanner EOF or when the user types "exit" or
// "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pv> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Account:    info, editaccount, passwd, delaccount, logout")
				printlnFn("Root key:   setroot, rotate")
				printlnFn("Categories: addcat, cats, editcat, delcat")
				printlnFn("Records:    add, (l)ist, show, edit, del, history")
				printlnFn("Tools:      gen, backup, restore, logs, exit")
			} else {
				printlnFn("Available commands: register, login, gen, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "info":
			_ = a.AccountInfo(ctx)

		case "editaccount":
			_ = a.UpdateAccount(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "delaccount":
			_ = a.DeleteAccount(ctx)

		case "setroot":
			_ = a.SetRootSecret(ctx)

		case "rotate":
			_ = a.RotateRootSecret(ctx)

		case "addcat":
			_ = a.AddCategory(ctx)

		case "cats":
			_ = a.ListCategories(ctx)

		case "editcat":
			_ = a.EditCategory(ctx)

		case "delcat":
			_ = a.DeleteCategory(ctx)

		case "add":
			_ = a.AddRecord(ctx)

		case "l", "list":
			_ = a.ListRecords(ctx)

		case "show":
			_ = a.ShowRecord(ctx)

		case "edit":
			_ = a.EditRecord(ctx)

		case "del":
			_ = a.DeleteRecord(ctx)

		case "history":
			_ = a.ShowHistory(ctx)

		case "gen":
			_ = a.Generate(ctx)

		case "backup":
			_ = a.Backup(ctx)

		case "restore":
			_ = a.Restore(ctx)

		case "logs":
			_ = a.ShowLogs(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
