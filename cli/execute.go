package cli

import (
	"bytes"

	"github.com/modil-io/devutils/server"
	"github.com/modil-io/devutils/tool"
)

// ExecuteCommand runs the devutils command with the given arguments and returns what it wrote on
// its output. It's primarily intended for testing purposes
func ExecuteCommand(args ...string) (output []byte, err error) {
	cmdOpts = tool.CommandOptions{}
	serverOpts = server.Options{}
	logLevel = ``
	configPath = ``

	cmd := NewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}
	cmd.SetArgs(args)

	err = cmd.Execute()

	return buf.Bytes(), err
}
