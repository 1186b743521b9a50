package commands

import (
	"context"

	"github.com/maksimkurb/dovado/src/internal/domain"
	"github.com/maksimkurb/dovado/src/internal/dovado"
)

type fetchFunc func(ctx context.Context, client domain.RouterClient) (*dovado.Response, error)

// ResponseCommand prints a parsed router answer in the selected format.
type ResponseCommand struct {
	name  string
	fetch fetchFunc
	ctx   *AppContext
	deps  *domain.AppDependencies
}

func CreateStateCommand() *ResponseCommand {
	return &ResponseCommand{
		name: "state",
		fetch: func(ctx context.Context, client domain.RouterClient) (*dovado.Response, error) {
			return client.State(ctx)
		},
	}
}

func CreateInfoCommand() *ResponseCommand {
	return &ResponseCommand{
		name: dovado.CmdInfo,
		fetch: func(ctx context.Context, client domain.RouterClient) (*dovado.Response, error) {
			return client.Info(ctx)
		},
	}
}

func CreateServicesCommand() *ResponseCommand {
	return &ResponseCommand{
		name: dovado.CmdServices,
		fetch: func(ctx context.Context, client domain.RouterClient) (*dovado.Response, error) {
			return client.Services(ctx)
		},
	}
}

func (c *ResponseCommand) Name() string {
	return c.name
}

func (c *ResponseCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	fs := newFlagSet(c.name)
	if err := parseFlags(fs, args, ctx); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return usageErrorf("%s takes no arguments", c.name)
	}

	deps, err := loadDependencies(ctx)
	if err != nil {
		return err
	}
	c.deps = deps
	return nil
}

func (c *ResponseCommand) Run() error {
	resp, err := c.fetch(c.ctx.context(), c.deps.RouterClient())
	if err != nil {
		return err
	}
	return RenderResponse(c.ctx.stdout(), c.ctx.Format, resp)
}
