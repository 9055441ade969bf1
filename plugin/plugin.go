// Package plugin implements the protoc side of the generator. It
// decodes a CodeGeneratorRequest from the wire, maps the invocation
// parameter onto generator options, runs the per-file generators, and
// encodes the CodeGeneratorResponse. Failures of individual files are
// reported through the response error, never through the process exit.
package plugin

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/protokit/swiftpb/compiler/descriptor"
	"github.com/protokit/swiftpb/compiler/gen"
	"github.com/protokit/swiftpb/compiler/gen/swift"
)

// Run reads one CodeGeneratorRequest from in and writes the encoded
// response to out. This is the whole lifetime of a plugin process.
func Run(in io.Reader, out io.Writer) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("swiftpb: reading request: %w", err)
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(raw, req); err != nil {
		return fmt.Errorf("swiftpb: decoding request: %w", err)
	}
	raw, err = proto.Marshal(Generate(req))
	if err != nil {
		return fmt.Errorf("swiftpb: encoding response: %w", err)
	}
	if _, err := out.Write(raw); err != nil {
		return fmt.Errorf("swiftpb: writing response: %w", err)
	}
	return nil
}

// Generate turns one request into one response. Generation errors are
// carried in the response error field, as protoc expects.
func Generate(req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}

	opts, err := ParseParameter(req.GetParameter())
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}

	targets := make(map[string]bool, len(req.GetFileToGenerate()))
	for _, name := range req.GetFileToGenerate() {
		targets[name] = true
	}
	var files []*descriptor.File
	for _, fd := range req.GetProtoFile() {
		if targets[fd.GetName()] {
			files = append(files, descriptor.New(fd))
		}
	}

	artifacts, errs := GenerateFiles(context.Background(), cfg, files)
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		resp.Error = proto.String(strings.Join(msgs, "; "))
		return resp
	}
	for _, a := range artifacts {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(a.Name),
			Content: proto.String(a.Content),
		})
	}
	return resp
}

// GenerateFiles runs one generator per file concurrently. Artifacts
// keep the input order regardless of completion order; every failed
// file contributes one error naming the file.
func GenerateFiles(ctx context.Context, cfg *gen.Config, files []*descriptor.File) ([]gen.Artifact, []error) {
	dialect := swift.NewDialect()
	artifacts := make([]gen.Artifact, len(files))
	failures := make([]error, len(files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			a, err := gen.NewFileGenerator(f, cfg, dialect).Run()
			if err != nil {
				failures[i] = fmt.Errorf("%s: %w", f.Name, err)
				return nil
			}
			artifacts[i] = a
			return nil
		})
	}
	g.Wait()

	out := artifacts[:0]
	var errs []error
	for i := range files {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		out = append(out, artifacts[i])
	}
	return out, errs
}
