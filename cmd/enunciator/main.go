// Command enunciator runs the Enunciate API documentation generator against a
// Java project described in a YAML configuration file.
package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/enunciator/cmd/enunciator/commands"
	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("enunciator"),
		kong.Description("Run Enunciate against a Java project"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	err := parser.Run(&commands.Global{}, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
