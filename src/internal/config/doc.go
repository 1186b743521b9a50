// Package config loads the router credentials used by the dovado CLI.
//
// The credentials file is TOML:
//
//	username = "admin"
//	password = "secret"
//	host = "192.168.0.1"   # optional, defaults to the default gateway
//	port = 6435
//	timeout = "5s"
//
// Files written for older tools as plain "key: value" lines are still accepted.
// Values are layered as defaults, then the file, then DOVADO_* environment
// variables, then command-line overrides:
//
//	cfg, err := config.LoadConfig(config.DefaultConfigPath())
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
//	    return err
//	}
//	cfg.ApplyOverrides(config.Overrides{Host: "10.0.0.1"})
//	if err := cfg.ValidateConfig(); err != nil {
//	    return err
//	}
package config
