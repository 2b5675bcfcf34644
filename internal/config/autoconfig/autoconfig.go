// autoconfig provides a way to create various instances from the [config.Config] like
// [editor.Cache] or [zap.Logger].
//
// For example, to get a logger configured by the nearest mdedit.yaml, you can write:
//
//	autoconfig.InvokeForCommand(func(logger *zap.Logger) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism.
package autoconfig

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/config"
	"github.com/stateful/mdedit/internal/editor"
	"github.com/stateful/mdedit/internal/log"
)

// Builder holds a dependency container. Every command should use
// a fresh one so that decorations do not leak between invocations.
type Builder struct {
	container *dig.Container
}

func NewBuilder() *Builder {
	c := dig.New()

	mustProvide(c.Provide(getLoader))
	mustProvide(c.Provide(getConfig))
	mustProvide(c.Provide(getLogger))
	mustProvide(c.Provide(getCache))

	return &Builder{container: c}
}

// Decorate replaces a provided type. It is mostly useful in tests
// to point the [config.Loader] at an in-memory file system.
func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return errors.WithStack(b.container.Decorate(decorator, opts...))
}

// Invoke is used to invoke the function with the given dependencies.
// The package will automatically figure out how to instantiate them
// using the available configuration.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	err := b.container.Invoke(function, opts...)
	return dig.RootCause(err)
}

// InvokeForCommand is like [Builder.Invoke] on a new [Builder].
func InvokeForCommand(function interface{}, opts ...dig.InvokeOption) error {
	return NewBuilder().Invoke(function, opts...)
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

func getLoader() (*config.Loader, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return config.NewLoader(config.DefaultNames, os.DirFS(cwd), config.WithLogger(log.Get())), nil
}

func getConfig(loader *config.Loader) (*config.Config, error) {
	return loader.Load("")
}

// getLogger falls back to the package logger, which is a no-op
// unless --verbose replaced it.
func getLogger(c *config.Config) (*zap.Logger, error) {
	if c == nil || !c.Log.Enabled {
		return log.Get(), nil
	}
	return log.Build(log.Options{
		Enabled: c.Log.Enabled,
		Verbose: c.Log.Verbose,
		Path:    c.Log.Path,
	})
}

func getCache(c *config.Config, logger *zap.Logger) *editor.Cache {
	return editor.NewCache(c.Cache.Capacity, editor.WithCacheLogger(logger))
}
