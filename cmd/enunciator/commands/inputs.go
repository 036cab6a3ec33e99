package commands

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/enunciator/internal/config"
	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/metrics"
)

// InputsCmd implements the 'inputs' command.
type InputsCmd struct {
	Format string `short:"f" help:"Output format" enum:"yaml,json" default:"yaml"`
}

func (i *InputsCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	t, err := newTask(g, cfg, true, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	decl, err := t.Declared()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategorySources, "failed to resolve task inputs").Build()
	}

	out := g.out()
	if i.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(decl)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(decl); err != nil {
		return err
	}
	return enc.Close()
}
