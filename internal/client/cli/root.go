package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return ""
}

// Run starts the interactive session and blocks until the user exits or
// stdin is closed.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to dailyDo CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
