// Package commands implements CLI command handlers for dovado.
//
// Each command implements the Runner interface: Init parses the command's own
// arguments and prepares dependencies, Run talks to the router and writes the
// result to AppContext.Stdout.
//
// # Available Commands
//
//   - state: info and services merged, rendered as JSON, YAML or TOML
//   - info, services: a single parsed query
//   - help, traffic: raw router output
//   - sms: send a text message through the router's modem
//   - query: any router command, parsed or raw
//   - version: build information
//
// # Example Usage
//
//	cmd := commands.CreateStateCommand()
//	ctx := &commands.AppContext{
//	    ConfigPath: config.DefaultConfigPath(),
//	    Format:     commands.FormatJSON,
//	    Stdout:     os.Stdout,
//	}
//	if err := cmd.Init(nil, ctx); err != nil {
//	    return err
//	}
//	return cmd.Run()
package commands
