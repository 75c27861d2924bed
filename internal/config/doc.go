// Package config provides configuration parsing for the appstore tools.
//
// The configuration is stored in appstore.json. Every field can be
// overridden from the environment with an APPSTORE_ prefix.
//
// # Configuration File Structure
//
//	{
//	  "storage": {
//	    "driver": "sqlite",
//	    "path": "./data/prefs.db"
//	  },
//	  "locale": {
//	    "default": "zh-CN",
//	    "key": "lang"
//	  },
//	  "viewport": { "width": 1280 },
//	  "breakpoints": { "sm": 640, "md": 768, "lg": 1024, "xl": 1280, "2xl": 1536 },
//	  "reload": { "delay": "300ms" },
//	  "inspect": { "addr": "127.0.0.1:7070" },
//	  "telemetry": { "namespace": "appstore" }
//	}
//
// # Environment Overrides
//
//	APPSTORE_STORAGE_DRIVER=file
//	APPSTORE_STORAGE_PATH=/var/lib/appstore/local.json
//	APPSTORE_LOCALE_DEFAULT=en
//	APPSTORE_BREAKPOINTS=sm:600,md:900
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Driver:", cfg.Storage.Driver)
package config
