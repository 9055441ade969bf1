// Command protoc-gen-swiftpb is the protoc plugin entry point. It
// reads a CodeGeneratorRequest from stdin and writes the response to
// stdout; diagnostics go to stderr so protoc can relay them.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/protokit/swiftpb/plugin"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if err := plugin.Run(os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("generation failed")
		os.Exit(1)
	}
}
