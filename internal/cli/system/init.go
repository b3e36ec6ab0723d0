package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/mixcheck/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing store file before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && ctx.IsFileStore() {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized mixcheck storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.Config != nil && ctx.Config.Path != "" {
		if _, err := os.Stat(ctx.Config.Path); os.IsNotExist(err) {
			if err := ctx.Config.Write(ctx.Config.Path); err != nil {
				return err
			}
			ctx.Printf("Wrote default config to: %s\n", ctx.Config.Path)
		}
	}

	return nil
}
