// Package cli is the interactive terminal front end. It only talks to the
// api command surface; storage and crypto stay behind it.
package cli

import (
	"bufio"
	"os"

	"github.com/dmitrijs2005/passvault/internal/vault/api"
)

type App struct {
	api       *api.API
	reader    *bufio.Reader
	accountID string
	userName  string
}

func NewApp(a *api.API) *App {
	return &App{api: a, reader: bufio.NewReader(os.Stdin)}
}

func (a *App) isLoggedIn() bool {
	return a.accountID != ""
}

func (a *App) logout() {
	a.accountID = ""
	a.userName = ""
}
