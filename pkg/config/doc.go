// Package config loads the dev tool configuration.
//
// Settings come from configs/config_<APP_ENV>.yaml, optionally overridden by
// environment variables carrying the DEV_ prefix, with secrets read from
// {NAME}_FILE or {NAME}:
//
//	cfg, err := config.Load(config.LoadOptions{AllowNoConfig: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Optional.Importers)
package config
