package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/internal/config"
	"github.com/ghstats/ghstats/pkg/errors"
)

func (c *CLI) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the configured token authenticates as",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWhoami(cmd.Context())
		},
	}
}

func (c *CLI) runWhoami(ctx context.Context) error {
	cfg, err := c.loadConfig(func(cfg *config.Config) {
		// Always verify against GitHub, never a cached answer.
		cfg.Cache.Backend = config.CacheNone
	})
	if err != nil {
		return err
	}
	client, store, err := c.newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Verifying token...")
	spinner.Start()
	user, err := client.User(ctx)
	if err != nil {
		spinner.StopWithError("Token rejected")
		return fmt.Errorf("verify token: %w", err)
	}
	spinner.Stop()

	printSuccess("GitHub user")
	printKeyValue("Username", "@"+user.GetLogin())
	if name := user.GetName(); name != "" {
		printKeyValue("Name", name)
	}
	if email := user.GetEmail(); email != "" {
		printKeyValue("Email", email)
	}
	printKeyValue("Public repositories", formatInt(user.GetPublicRepos()))
	printKeyValue("Member since", user.GetCreatedAt().Format("Jan 2, 2006"))
	if cfg.GitHub.User != "" && cfg.GitHub.User != user.GetLogin() {
		printWarning("github.user is %q, reports default to that login", cfg.GitHub.User)
	}
	return nil
}

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as TOML, secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(out, cfg.String())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, config.DefaultPath())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and report the first problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printSuccess("Configuration is valid")
			if !cfg.HasToken() {
				printWarning("No GitHub token configured (%s)", errors.ErrCodeUnauthorized)
			}
			return nil
		},
	})
	return cmd
}
