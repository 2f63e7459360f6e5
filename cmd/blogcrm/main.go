// Command blogcrm manages markdown blog posts stored in a GitHub repository
// or a local directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/uakbr/github-blog-crm/internal/adapters/driven/config/file"
	"github.com/uakbr/github-blog-crm/internal/adapters/driven/storage/memory"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/cli"
	"github.com/uakbr/github-blog-crm/internal/connectors/filesystem"
	"github.com/uakbr/github-blog-crm/internal/connectors/github"
	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
	"github.com/uakbr/github-blog-crm/internal/core/services"
	"github.com/uakbr/github-blog-crm/internal/normalisers/markdown"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := openConfig(os.Getenv("BLOGCRM_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open config: %v\n", err)
		return err
	}

	cli.SetSettingsService(services.NewSettingsService(configStore))
	cli.SetBuilder(build)
	cli.SetVersion(version)
	return cli.Execute(ctx)
}

// openConfig opens the config file in dir, or an in-process store when dir
// is ":memory:".
func openConfig(dir string) (driven.ConfigStore, error) {
	if dir == memory.ConfigPath {
		return memory.NewConfigStore(), nil
	}
	return file.NewConfigStore(dir)
}

// build assembles the pipeline for resolved settings.
func build(settings domain.Settings) (*cli.Services, error) {
	svc := &cli.Services{
		Stylesheet: markdown.StyleCSS,
	}

	var source driven.ContentSource
	switch settings.Source {
	case domain.SourceFilesystem:
		fs := filesystem.New(settings.Path)
		source = fs
		svc.Changes = fs.Watch
		svc.Close = fs.Close
	default:
		client, err := github.NewClient(
			github.ConfigFromSettings(settings),
			memory.NewResponseCache(settings.CacheTimeout),
		)
		if err != nil {
			return nil, err
		}
		source = client
		svc.Repository = services.NewRepositoryService(client)
	}

	transformer := markdown.New(markdown.Options{
		BaseURL:   settings.BaseURL,
		ImagePath: settings.ImagePath,
	})

	svc.Posts = services.NewPostService(
		source,
		transformer,
		memory.NewPostStore(),
		services.WithConcurrency(settings.Concurrency),
	)
	return svc, nil
}
