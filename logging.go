package main

import (
	"github.com/urfave/cli"

	"github.com/df07/go-ao-raytracer/pkg/log"
)

var logger = log.New("raytracer")

func setupLogging(ctx *cli.Context) {
	verbosity := 0
	if ctx.GlobalBool("v") || ctx.Bool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") || ctx.Bool("vv") {
		verbosity = 2
	}
	log.SetLevel(log.VerbosityLevel(verbosity))
}
