package commands

import (
	"strings"

	"github.com/maksimkurb/dovado/src/internal/domain"
)

func CreateQueryCommand() *QueryCommand {
	return &QueryCommand{}
}

// QueryCommand runs an arbitrary router command, parsed unless -raw is given.
type QueryCommand struct {
	raw     bool
	command string
	ctx     *AppContext
	deps    *domain.AppDependencies
}

func (q *QueryCommand) Name() string {
	return "query"
}

func (q *QueryCommand) Init(args []string, ctx *AppContext) error {
	q.ctx = ctx

	fs := newFlagSet(q.Name())
	fs.BoolVar(&q.raw, "raw", false, "Print the answer without parsing it")
	if err := parseFlags(fs, args, ctx); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageErrorf("usage: query [-raw] <command...>")
	}
	q.command = strings.Join(fs.Args(), " ")

	deps, err := loadDependencies(ctx)
	if err != nil {
		return err
	}
	q.deps = deps
	return nil
}

func (q *QueryCommand) Run() error {
	client := q.deps.RouterClient()

	if q.raw {
		text, err := client.QueryRaw(q.ctx.context(), q.command)
		if err != nil {
			return err
		}
		return RenderRaw(q.ctx.stdout(), text)
	}

	resp, err := client.Query(q.ctx.context(), q.command)
	if err != nil {
		return err
	}
	return RenderResponse(q.ctx.stdout(), q.ctx.Format, resp)
}
