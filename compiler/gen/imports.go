package gen

import "sort"

// ImportResolver computes the dependency import statements for one
// file. Implementations must be deterministic: identical inputs yield
// an identical ordered sequence.
type ImportResolver interface {
	ComputeImports(n *Namer, directive ImportDirective, reexportPublic bool) []string
}

// ModuleImportResolver derives imports from the file's dependency list
// and the configured module mappings. Dependencies that resolve to no
// module are generated into the same module and need no import;
// bundled-runtime dependencies ship with the runtime library.
type ModuleImportResolver struct{}

// ComputeImports implements ImportResolver.
func (ModuleImportResolver) ComputeImports(n *Namer, directive ImportDirective, reexportPublic bool) []string {
	file := n.File()
	public := make(map[string]bool, len(file.PublicDependencies))
	for _, idx := range file.PublicDependencies {
		if int(idx) < len(file.Dependencies) {
			public[file.Dependencies[idx]] = true
		}
	}

	// module -> re-exported. A module re-exported by any public
	// dependency stays re-exported.
	modules := make(map[string]bool)
	for _, dep := range file.Dependencies {
		module, ok := n.ModuleFor(dep)
		if !ok {
			continue
		}
		modules[module] = modules[module] || public[dep]
	}

	names := make([]string, 0, len(modules))
	for m := range modules {
		names = append(names, m)
	}
	sort.Strings(names)

	stmts := make([]string, 0, len(names))
	for _, m := range names {
		stmts = append(stmts, importStatement(m, directive, reexportPublic && modules[m], n))
	}
	return stmts
}

func importStatement(module string, directive ImportDirective, reexport bool, n *Namer) string {
	switch directive {
	case ImportImplementationOnly:
		return "@_implementationOnly import " + module
	case ImportAccessLevel:
		if n.cfg.Visibility == VisibilityPublic {
			return "public import " + module
		}
		return "internal import " + module
	default:
		if reexport {
			return "@_exported import " + module
		}
		return "import " + module
	}
}
