package main

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"NewsletterCurator/internal/app"
	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     config.Config

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
}

func (c *commandContext) ensureConfig() config.Config {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config = config.Load(path)
	})
	return c.config
}

// withApplication builds the application for one command and tears it down
// afterwards.
func (c *commandContext) withApplication(ctx context.Context, cfg config.Config, fn func(*app.Application) error) error {
	logOut, closeLog, err := logging.Open(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger := logging.New(cfg.Logging.Level, logOut)

	application, err := app.New(ctx, cfg, app.Terminal{
		In:          c.in,
		Out:         c.out,
		Err:         c.errOut,
		Interactive: c.interactive(),
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := application.Close(); cerr != nil {
			logger.Warn("close application", "error", cerr)
		}
	}()

	return fn(application)
}

func (c *commandContext) interactive() bool {
	f, ok := c.out.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
