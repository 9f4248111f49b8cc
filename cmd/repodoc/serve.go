package main

import (
	"github.com/fwojciec/repodoc/mcp"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.Warm {
		go func() {
			if err := deps.Documents.EnsureReady(deps.Ctx); err != nil {
				deps.Logger.Warn("startup scan failed, retrying on first request", "err", err)
			}
		}()
	}

	srv := mcp.NewServer(deps.Documents,
		mcp.WithVersion(version),
		mcp.WithLogger(deps.Logger),
	)

	deps.Logger.Info("serving on stdio", "version", version)
	return srv.Run(deps.Ctx, deps.Transport)
}
