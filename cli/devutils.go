package cli

import (
	"fmt"
	"strings"

	"github.com/modil-io/devutils/api"
	"github.com/modil-io/devutils/config"
	"github.com/modil-io/devutils/logger"
	"github.com/modil-io/devutils/merge"
	"github.com/modil-io/devutils/regexputil"
	"github.com/modil-io/devutils/server"
	"github.com/modil-io/devutils/tool"
	"github.com/modil-io/devutils/value"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var helpTemplate = `Description:
  {{rpad .Long 10}}

Usage:{{if .Runnable}}{{if .HasAvailableFlags}}
  {{appendIfNotPresent .UseLine "[flags]"}}{{else}}{{.UseLine}}{{end}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt .Aliases 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample }}

Examples:
{{ .Example }}{{end}}{{ if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{ if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimRightSpace}}{{end}}{{ if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimRightSpace}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsHelpCommand}}
{{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}
`

var (
	cmdOpts    tool.CommandOptions
	serverOpts server.Options
	logLevel   string
	configPath string
)

// NewCommand creates the devutils Command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `devutils`,
		Short: `DevUtils - Merge, interpolate, and query structured data`,
		Long: `DevUtils - Merge, interpolate, and query YAML, JSON, and TOML documents.
  Settings are read from <current directory>/` + api.ConfigFileName + ` unless --config is given.`,
		Version:           fmt.Sprintf("%v", getVersion()),
		PersistentPreRunE: initialize,
		SilenceErrors:     true,
		Args:              cobra.NoArgs}

	flags := cmd.PersistentFlags()
	flags.StringVar(&logLevel, `loglevel`, ``,
		`error/warn/info/debug/trace (default "error")`)
	flags.StringVar(&configPath, `config`, ``,
		`path to the devutils config file. Overrides <current directory>/`+api.ConfigFileName)

	cmd.AddCommand(
		newMergeCommand(),
		newInterpolateCommand(),
		newQueryCommand(),
		newRegexpCommand(),
		newServeCommand())
	cmd.SetHelpTemplate(helpTemplate)
	return cmd
}

func newMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `merge <file> [<file> ...]`,
		Short: `Merge documents into the first document`,
		Long: `Merge - Merge documents, in order, into the first document and render the result.
  Files may be YAML, JSON, or TOML. Glob patterns are expanded and - denotes stdin.`,
		Example: `  devutils merge --strategy deep base.yaml overrides/*.yaml
  devutils merge --recursive --not-override --diff base.yaml defaults.json`,
		RunE: cmdMerge,
		Args: cobra.MinimumNArgs(1)}

	flags := cmd.Flags()
	flags.StringVar(&cmdOpts.Merge.Strategy, `strategy`, ``,
		strings.Join(merge.StrategyNames(), `/`)+`: a named set of merge options`)
	flags.BoolVar(&cmdOpts.Merge.Recursive, `recursive`, false,
		`merge nested maps and nested arrays of maps`)
	flags.BoolVar(&cmdOpts.Merge.NotOverride, `not-override`, false,
		`never replace an entry that already exists in the target`)
	flags.BoolVar(&cmdOpts.Merge.IgnoreNull, `ignore-null`, false,
		`with --not-override, replace target entries that are null, false, 0, or empty`)
	flags.BoolVar(&cmdOpts.Merge.ExtendObjectArray, `extend-array`, false,
		`append arrays of maps instead of merging them by index`)
	flags.StringVar(&cmdOpts.RenderAs, `render-as`, ``,
		`s/json/yaml: Specify the output format of the result; s means plain text (default "yaml")`)
	flags.BoolVar(&cmdOpts.Diff, `diff`, false,
		`render a diff between the first document and the result`)
	flags.BoolVar(&cmdOpts.Patch, `patch`, false,
		`render the JSON merge patch that transforms the first document into the result`)
	flags.BoolVar(&cmdOpts.Color, `color`, false,
		`always color the diff. Colors are otherwise only used on a terminal`)
	return cmd
}

func newInterpolateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `interpolate <template>`,
		Short: `Interpolate ${expression} placeholders in a template`,
		Long: `Interpolate - Replace each ${expression} placeholder in the template with the value of the
  expression evaluated against the given variables.`,
		Example: `  devutils interpolate --var name=world 'hello ${name}'`,
		RunE:    cmdInterpolate,
		Args:    cobra.ExactArgs(1)}

	flags := cmd.Flags()
	flags.StringVar(&cmdOpts.RenderAs, `render-as`, ``,
		`s/json/yaml: Specify the output format of the result; s means plain text (default "s")`)
	addVarFlags(cmd)
	return cmd
}

func newQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     `query <file> <path>`,
		Short:   `Render the value found at a path in a document`,
		Long:    `Query - Render the value found at a dotted or bracketed path such as a.b[0].c in a document.`,
		Example: `  devutils query values.yaml 'servers[0].host'`,
		RunE:    cmdQuery,
		Args:    cobra.ExactArgs(2)}

	flags := cmd.Flags()
	flags.StringVar(&cmdOpts.RenderAs, `render-as`, ``,
		`s/json/yaml: Specify the output format of the result; s means plain text (default "yaml")`)
	return cmd
}

func newRegexpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `regexp`,
		Short: `List, show, and test the registered regular expressions`,
		Long:  `Regexp - List, show, and test the registered regular expressions.`,
		Args:  cobra.NoArgs}

	cmd.AddCommand(
		&cobra.Command{
			Use:   `list`,
			Short: `List the names of the registered regular expressions`,
			RunE:  cmdRegexpList,
			Args:  cobra.NoArgs},
		&cobra.Command{
			Use:   `get <name>`,
			Short: `Show the registered regular expression with the given name`,
			RunE:  cmdRegexpGet,
			Args:  cobra.ExactArgs(1)},
		&cobra.Command{
			Use:   `test <name or pattern> <text>`,
			Short: `Test if text matches a registered regular expression or a pattern`,
			RunE:  cmdRegexpTest,
			Args:  cobra.ExactArgs(2)})
	return cmd
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `serve`,
		Short: `Start a devutils REST server`,
		Long: `Serve - Start a REST server that merges, interpolates, and queries JSON documents.
  Responds under the /merge, /interpolate, /query, and /regexp endpoints`,
		RunE: cmdServe,
		Args: cobra.NoArgs}

	flags := cmd.Flags()
	flags.StringVar(&serverOpts.Addr, `addr`, ``, `ip address to listen on`)
	flags.IntVar(&serverOpts.Port, `port`, 8080, `port number to listen to`)
	flags.StringVar(&serverOpts.SSLKey, `ssl-key`, ``, `ssl private key`)
	flags.StringVar(&serverOpts.SSLCert, `ssl-cert`, ``, `ssl certificate`)
	flags.StringVar(&serverOpts.ClientCA, `ca`, ``, `certificate authority to use to verify clients`)
	flags.BoolVar(&serverOpts.ClientCertVerify, `clientCertVerify`, false, `verify client certificate`)
	return cmd
}

func addVarFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVar(&cmdOpts.VarPaths, `vars`, nil,
		`path to a YAML, JSON, or TOML file that contains key-value mappings to become variables`)
	flags.StringArrayVar(&cmdOpts.Variables, `var`, nil,
		`a key:value or key=value where value is a string or a YAML flow literal`)
}

// initialize applies the settings of the configuration file to the settings that were not given
// on the command line and configures the logger.
func initialize(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == `` {
		path = api.ConfigFileName
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg := &config.Config{Merge: cmdOpts.Merge, RenderAs: cmdOpts.RenderAs, LogLevel: logLevel}
	if err = config.Apply(cfg, fileCfg); err != nil {
		return err
	}
	cmdOpts.Merge = cfg.Merge
	cmdOpts.RenderAs = cfg.RenderAs
	logger.Configure(`devutils`, cfg.LogLevel, cmd.ErrOrStderr())
	return nil
}

func cmdMerge(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return tool.MergeAndRender(&cmdOpts, args, cmd.OutOrStdout())
}

func cmdInterpolate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return tool.InterpolateAndRender(&cmdOpts, args[0], cmd.OutOrStdout())
}

func cmdQuery(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	found, err := tool.QueryAndRender(&cmdOpts, args[0], args[1], cmd.OutOrStdout())
	if err == nil && !found {
		err = errors.Errorf(`no value found at '%s' in '%s'`, args[1], args[0])
	}
	return err
}

func cmdRegexpList(cmd *cobra.Command, _ []string) error {
	for _, n := range regexputil.Names() {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}

func cmdRegexpGet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	p, ok := regexputil.GetRegexp(args[0])
	if !ok {
		return api.UnknownRegexp(args[0])
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), p)
	return err
}

func cmdRegexpTest(cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), regexputil.Test(tool.ResolvePattern(args[0]), value.String(args[1])))
	return err
}

func cmdServe(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	return server.Start(&serverOpts)
}
