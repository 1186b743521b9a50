package commands

import "fmt"

// BuildInfo is filled in by the linker in the main package.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func CreateVersionCommand(info BuildInfo) *VersionCommand {
	return &VersionCommand{info: info}
}

type VersionCommand struct {
	info BuildInfo
	ctx  *AppContext
}

func (v *VersionCommand) Name() string {
	return "version"
}

func (v *VersionCommand) Init(args []string, ctx *AppContext) error {
	v.ctx = ctx
	if len(args) > 0 {
		return usageErrorf("version takes no arguments")
	}
	return nil
}

func (v *VersionCommand) Run() error {
	_, err := fmt.Fprintf(v.ctx.stdout(), "dovado %s (Commit: %s, Date: %s)\n", v.info.Version, v.info.Commit, v.info.Date)
	return err
}
