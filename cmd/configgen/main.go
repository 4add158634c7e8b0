package main

import (
	"flag"

	"github.com/danmuck/mrpd/internal/config"
	"github.com/danmuck/mrpd/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()

	kind := flag.String("kind", config.KindMSRP, "config kind: msrp")
	output := flag.String("output", "msrpd.toml", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to -output)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			path = *output
		}
		if _, err := config.Load(path); err != nil {
			log.Fatal().Err(err).Msgf("configgen.validate path=%s", path)
		}
		log.Info().Msgf("configgen.validate ok kind=%s path=%s", *kind, path)
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		log.Fatal().Err(err).Msgf("configgen.write path=%s", *output)
	}
	log.Info().Msgf("configgen.write ok kind=%s path=%s", *kind, *output)
}
