package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// Root greets the user, reports the restored session and hands control to
// the REPL. It returns when the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to MyCommunity CLI (type 'help' for commands)")

	if s := a.auth.Session(); s.IsSpectator() {
		fmt.Fprintln(a.out, "Browsing as spectator")
	} else if s.IsAuthenticated() {
		fmt.Fprintf(a.out, "Welcome back, %s\n", s.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
