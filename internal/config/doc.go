// Package config provides configuration management for the zappi CLI.
//
// # Configuration File
//
// config.yaml is searched in the current directory and then in
// ~/.config/zappi/. Every key is optional:
//
//	store:
//	  path: ~/.zappi/apps.json
//	backup:
//	  dir: ~/.local/share/zappi/backups
//	  retention: 5
//	log:
//	  error_file: zappi-error.log   # empty disables
//	detect:
//	  max_results: 0                # 0 means no cap
//	  timeout: 15s
//	install:
//	  backend: simulated            # or native
//	  workers: 1
//	  timeout: 10m
//	  simulate:
//	    success_rate: 0.8
//	    min_delay: 1s
//	    max_delay: 3s
//
// # Environment
//
// Any key can be overridden with a ZAPPI_ variable, dots replaced by
// underscores: ZAPPI_INSTALL_BACKEND=native.
//
// # Validation
//
// [Validate] returns one error per invalid key; each matches
// errors.ErrInvalidConfig.
package config
