package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/retrolang/dawbasic/cli"
	"github.com/retrolang/dawbasic/replserv"
	"github.com/retrolang/dawbasic/settings"
)

var (
	configPath = flag.String("config", "", "path to a TOML settings file")
	listen     = flag.String("listen", "", "listen address for -serve, overrides the settings file")
	serve      = flag.Bool("serve", false, "serve sessions over HTTP instead of opening the shell")
	debug      = flag.Bool("debug", false, "log at debug level")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("settings did not parse")
	}

	// flags beat file values
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	zerolog.SetGlobalLevel(logLevel(cfg.LogLevel))

	if *serve {
		log.Info().Str("listen", cfg.Listen).Msg("serving sessions")
		log.Fatal().Err(http.ListenAndServe(cfg.Listen, startup())).Msg("server stopped")
	}

	cli.Start(cfg)
}

// startup builds the session service router.
func startup() *mux.Router {
	return replserv.New(log.Logger).Routes()
}

// logLevel maps the settings value, defaulting to info.
func logLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
