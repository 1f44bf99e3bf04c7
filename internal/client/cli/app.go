package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/eventboard/internal/client/client"
	"github.com/dmitrijs2005/eventboard/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer

	// session
	token    string
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool { return a.token != "" }

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ")"
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to eventboard CLI (type 'help' for commands)")

	if err := a.client.Ping(ctx); err != nil {
		printlnFn("Warning:", err.Error())
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
