package main

import (
	"fmt"
	"os"

	"github.com/modil-io/devutils/cli"
)

func main() {
	cmd := cli.NewCommand()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), `Error:`, err)
		os.Exit(1)
	}
}
