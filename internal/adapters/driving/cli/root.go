// Package cli implements the blogcrm command line interface.
//
// Commands are registered on rootCmd in init functions. The settings
// service and the service builder are injected by main before Execute;
// pipeline services are built lazily, once settings are resolved, so
// commands such as config and version work without a configured source.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/cli/styles"
	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
	"github.com/uakbr/github-blog-crm/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services bundles what the commands operate on.
type Services struct {
	Posts driving.PostService

	// Repository is nil when the source is not a hosted repository.
	Repository driving.RepositoryService

	// Changes subscribes to source change notifications. Nil when the
	// source cannot push changes.
	Changes func(ctx context.Context) (<-chan struct{}, error)

	// Stylesheet returns the CSS for highlighted code blocks.
	Stylesheet func() (string, error)

	// Close releases source resources. May be nil.
	Close func() error
}

// Builder assembles services for resolved settings.
type Builder func(settings domain.Settings) (*Services, error)

var (
	settingsService driving.SettingsService
	buildServices   Builder

	// settings is resolved before every command runs.
	settings domain.Settings

	// current is built on first use.
	current *Services

	ui = styles.DefaultStyles()

	getenv = os.Getenv
)

// Persistent flags.
var (
	verbose    bool
	flagSource string
	flagPath   string
	flagOwner  string
	flagRepo   string
	flagBranch string
	flagToken  string
)

var rootCmd = &cobra.Command{
	Use:   "blogcrm",
	Short: "Manage markdown blog posts stored in GitHub",
	Long: `blogcrm fetches markdown posts from a GitHub repository or a local
directory, renders them and lets you browse, filter and index the result.`,
	SilenceUsage:      true,
	PersistentPreRunE: resolveSettings,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&flagSource, "source", "", "Content source: github or filesystem")
	flags.StringVar(&flagPath, "path", "", "Directory of a filesystem source")
	flags.StringVar(&flagOwner, "owner", "", "GitHub repository owner")
	flags.StringVar(&flagRepo, "repo", "", "GitHub repository name")
	flags.StringVar(&flagBranch, "branch", "", "GitHub branch")
	flags.StringVar(&flagToken, "token", "", "GitHub token (prefer GITHUB_TOKEN)")
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetBuilder injects the function that assembles pipeline services.
func SetBuilder(b Builder) {
	buildServices = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases the services it built.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeServices(); err == nil {
		err = closeErr
	}
	return err
}

// resolveSettings layers stored settings, then environment, then flags.
func resolveSettings(cmd *cobra.Command, _ []string) error {
	resolved := domain.DefaultSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		resolved = stored
	}

	applyEnv(&resolved)
	applyFlags(cmd, &resolved)

	settings = resolved
	logger.SetVerbose(verbose || settings.Debug)
	logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

func applyEnv(s *domain.Settings) {
	if v := getenv("GITHUB_TOKEN"); v != "" {
		s.Token = v
	}
	if v := getenv("BLOGCRM_OWNER"); v != "" {
		s.Owner = v
	}
	if v := getenv("BLOGCRM_REPO"); v != "" {
		s.Repo = v
	}
	if v := getenv("BLOGCRM_BRANCH"); v != "" {
		s.Branch = v
	}
}

func applyFlags(cmd *cobra.Command, s *domain.Settings) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("source") {
		s.Source = domain.SourceType(flagSource)
	}
	if changed("path") {
		s.Path = flagPath
		if !changed("source") {
			s.Source = domain.SourceFilesystem
		}
	}
	if changed("owner") {
		s.Owner = flagOwner
	}
	if changed("repo") {
		s.Repo = flagRepo
	}
	if changed("branch") {
		s.Branch = flagBranch
	}
	if changed("token") {
		s.Token = flagToken
	}
	if verbose {
		s.Debug = true
	}
}

// requireServices builds the pipeline services on first use.
func requireServices() (*Services, error) {
	if current != nil {
		return current, nil
	}
	if buildServices == nil {
		return nil, errors.New("services not configured")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w (see 'blogcrm config --help')", err)
	}

	built, err := buildServices(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise source: %w", err)
	}
	current = built
	return current, nil
}

func closeServices() error {
	if current == nil {
		return nil
	}
	closer := current.Close
	current = nil
	if closer == nil {
		return nil
	}
	return closer()
}
