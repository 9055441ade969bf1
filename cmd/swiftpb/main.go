// Command swiftpb generates Swift sources from a compiled
// FileDescriptorSet without going through protoc. It exposes the same
// options as the protoc plugin, plus a watch mode for local iteration.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
