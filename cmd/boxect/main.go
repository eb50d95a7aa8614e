// Command boxect computes the recommended minimum Edge Crush Test value for
// corrugated shipping boxes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/boxect/internal/cli"
	"github.com/rshade/boxect/pkg/version"
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetVersionTemplate(fmt.Sprintf("boxect {{.Version}} (commit %s, built %s)\n",
		version.GetGitCommit(), version.GetBuildDate()))
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	// Cobra has already printed the error.
	if err := run(context.Background(), os.Args[1:]); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
