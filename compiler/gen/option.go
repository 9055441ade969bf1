package gen

// Option configures code generation.
type Option func(*Config) error

// WithFileNaming sets the output-filename derivation policy by its
// option spelling: "FullPath", "PathToUnderscores", or "DropPath".
func WithFileNaming(s string) Option {
	return func(c *Config) error {
		n, err := ParseFileNaming(s)
		if err != nil {
			return err
		}
		c.FileNaming = n
		return nil
	}
}

// WithVisibility sets the access level of generated declarations:
// "Public" or "FileLocal".
func WithVisibility(s string) Option {
	return func(c *Config) error {
		v, err := ParseVisibility(s)
		if err != nil {
			return err
		}
		c.Visibility = v
		return nil
	}
}

// WithMode sets the generation profile: "Full" or "Lite".
func WithMode(s string) Option {
	return func(c *Config) error {
		m, err := ParseMode(s)
		if err != nil {
			return err
		}
		c.Mode = m
		return nil
	}
}

// WithImportDirective sets the dependency import spelling: "Plain",
// "ImplementationOnly", or "AccessLevel".
func WithImportDirective(s string) Option {
	return func(c *Config) error {
		d, err := ParseImportDirective(s)
		if err != nil {
			return err
		}
		c.ImportDirective = d
		return nil
	}
}

// WithModuleMapping routes a proto path prefix to a Swift module.
func WithModuleMapping(prefix, module string) Option {
	return func(c *Config) error {
		if prefix == "" {
			return NewConfigError("ModuleMapping", nil, "prefix cannot be empty")
		}
		if module == "" {
			return NewConfigError("ModuleMapping", prefix, "module cannot be empty")
		}
		c.ModuleMappings = append(c.ModuleMappings, ModuleMapping{Prefix: prefix, Module: module})
		return nil
	}
}

// WithShortenPatterns adds path substrings that switch matching input
// files to shortened type names.
func WithShortenPatterns(patterns ...string) Option {
	return func(c *Config) error {
		c.ShortenPatterns = append(c.ShortenPatterns, patterns...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
