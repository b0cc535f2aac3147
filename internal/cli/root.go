package cli

import (
	"context"
	"os"
)

// Execute runs the bipartisan CLI with os.Args and returns an error if
// any command fails.
//
// Logging goes to stderr at info level; --verbose (-v) switches to debug.
// Cancelling ctx (SIGINT) aborts long-running commands with ctx.Err().
//
// Example:
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	    defer cancel()
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
