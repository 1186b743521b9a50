package commands

import (
	"strings"

	"github.com/maksimkurb/dovado/src/internal/domain"
	"github.com/maksimkurb/dovado/src/internal/dovado"
)

// RawCommand sends a router command and prints the answer unparsed. Extra
// arguments are appended to the command.
type RawCommand struct {
	name    string
	command string
	ctx     *AppContext
	deps    *domain.AppDependencies
}

func CreateHelpCommand() *RawCommand {
	return CreateRawCommand(dovado.CmdHelp)
}

func CreateTrafficCommand() *RawCommand {
	return CreateRawCommand(dovado.CmdTraffic)
}

// CreateRawCommand passes any other word through to the router.
func CreateRawCommand(name string) *RawCommand {
	return &RawCommand{name: name, command: name}
}

func (c *RawCommand) Name() string {
	return c.name
}

func (c *RawCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if len(args) > 0 {
		c.command = strings.Join(append([]string{c.name}, args...), " ")
	}

	deps, err := loadDependencies(ctx)
	if err != nil {
		return err
	}
	c.deps = deps
	return nil
}

func (c *RawCommand) Run() error {
	text, err := c.deps.RouterClient().QueryRaw(c.ctx.context(), c.command)
	if err != nil {
		return err
	}
	return RenderRaw(c.ctx.stdout(), text)
}
