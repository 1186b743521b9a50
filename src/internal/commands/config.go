package commands

import (
	"fmt"

	"github.com/maksimkurb/dovado/src/internal/config"
	"github.com/maksimkurb/dovado/src/internal/log"
)

const maskedPassword = "******"

func CreateConfigCommand() *ConfigCommand {
	return &ConfigCommand{}
}

// ConfigCommand prints the effective credentials (file, environment and flags
// merged) as TOML, or stores them in the credentials file with -write.
type ConfigCommand struct {
	write bool
	ctx   *AppContext
	cfg   *config.Config
}

func (c *ConfigCommand) Name() string {
	return "config"
}

func (c *ConfigCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	fs := newFlagSet(c.Name())
	fs.BoolVar(&c.write, "write", false, "Save the effective configuration to the credentials file")
	if err := parseFlags(fs, args, ctx); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return usageErrorf("config takes no arguments")
	}

	cfg, err := loadConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *ConfigCommand) Run() error {
	if c.write {
		if err := c.cfg.WriteConfig(c.ctx.ConfigPath); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}
		log.Infof("Credentials saved to %s", c.ctx.ConfigPath)
		_, err := fmt.Fprintf(c.ctx.stdout(), "Saved %s\n", c.ctx.ConfigPath)
		return err
	}

	shown := *c.cfg
	if shown.Password != "" {
		shown.Password = maskedPassword
	}
	buf, err := shown.SerializeConfig()
	if err != nil {
		return err
	}
	_, err = c.ctx.stdout().Write(buf.Bytes())
	return err
}
