package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protokit/swiftpb/compiler/descriptor"
	"github.com/protokit/swiftpb/compiler/gen"
	"github.com/protokit/swiftpb/plugin"
)

var (
	flagDescriptorSet   string
	flagOut             string
	flagConfig          string
	flagFileNaming      string
	flagVisibility      string
	flagMode            string
	flagImportDirective string
	flagModules         []string
	flagShorten         []string
	flagOnly            []string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Swift sources from a FileDescriptorSet",
	RunE:  runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDescriptorSet, "descriptor-set", "", "path to a serialized FileDescriptorSet (required)")
	cmd.Flags().StringVar(&flagOut, "out", ".", "output directory")
	cmd.Flags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&flagFileNaming, "naming", "", "output naming policy (FullPath, PathToUnderscores, DropPath)")
	cmd.Flags().StringVar(&flagVisibility, "visibility", "", "generated declaration visibility (FileLocal, Public)")
	cmd.Flags().StringVar(&flagMode, "mode", "", "generation profile (Full, Lite)")
	cmd.Flags().StringVar(&flagImportDirective, "import-directive", "", "import spelling (Plain, ImplementationOnly, AccessLevel)")
	cmd.Flags().StringArrayVar(&flagModules, "module", nil, "module mapping as prefix:module, repeatable")
	cmd.Flags().StringArrayVar(&flagShorten, "shorten", nil, "path patterns whose lite output drops the type prefix")
	cmd.Flags().StringArrayVar(&flagOnly, "file", nil, "generate only the named proto files")
	cmd.MarkFlagRequired("descriptor-set")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	files, err := loadDescriptorSet(flagDescriptorSet)
	if err != nil {
		return err
	}
	return generateInto(cmd, cfg, files)
}

func generateInto(cmd *cobra.Command, cfg *gen.Config, files []*descriptor.File) error {
	artifacts, errs := plugin.GenerateFiles(cmd.Context(), cfg, files)
	for _, e := range errs {
		logger.Error().Err(e).Msg("generation failed")
	}
	for _, a := range artifacts {
		target := filepath.Join(flagOut, filepath.FromSlash(a.Name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(a.Content), 0o644); err != nil {
			return err
		}
		logger.Debug().Str("file", target).Msg("wrote")
	}
	logger.Info().Int("files", len(artifacts)).Int("errors", len(errs)).Msg("generation finished")
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed", len(errs), len(files))
	}
	return nil
}

// buildConfig merges the configuration file with command-line flags,
// flags winning.
func buildConfig() (*gen.Config, error) {
	var opts []gen.Option
	if flagConfig != "" {
		fromFile, err := plugin.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fromFile...)
	}
	if flagFileNaming != "" {
		opts = append(opts, gen.WithFileNaming(flagFileNaming))
	}
	if flagVisibility != "" {
		opts = append(opts, gen.WithVisibility(flagVisibility))
	}
	if flagMode != "" {
		opts = append(opts, gen.WithMode(flagMode))
	}
	if flagImportDirective != "" {
		opts = append(opts, gen.WithImportDirective(flagImportDirective))
	}
	for _, m := range flagModules {
		prefix, module, ok := strings.Cut(m, ":")
		if !ok {
			return nil, fmt.Errorf("malformed --module %q, expected prefix:module", m)
		}
		opts = append(opts, gen.WithModuleMapping(prefix, module))
	}
	if len(flagShorten) > 0 {
		opts = append(opts, gen.WithShortenPatterns(flagShorten...))
	}
	return gen.NewConfig(opts...)
}

func loadDescriptorSet(path string) ([]*descriptor.File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor set: %w", err)
	}
	set := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(raw, set); err != nil {
		return nil, fmt.Errorf("decoding descriptor set %s: %w", path, err)
	}

	only := make(map[string]bool, len(flagOnly))
	for _, name := range flagOnly {
		only[name] = true
	}
	var files []*descriptor.File
	for _, fd := range set.GetFile() {
		if len(only) > 0 && !only[fd.GetName()] {
			continue
		}
		files = append(files, descriptor.New(fd))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("descriptor set %s matched no files", path)
	}
	return files, nil
}
