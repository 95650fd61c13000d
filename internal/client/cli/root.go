package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	addr := a.session.UserAddress.Hex()
	s := fmt.Sprintf("(%s %s…%s", a.session.Deployment.ChainName, addr[:6], addr[len(addr)-4:])
	if !a.adapter.Ready() {
		s += " degraded"
	}
	return s + ")"
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to the donation log CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.refresh(ctx)

	runREPL(ctx, a, a.getStatus, scanner)
}
