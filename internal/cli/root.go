// Package cli implements the changelog-gen command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/go-github/v53/github"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/forgenotes/changelog-gen/internal/changelog"
	"github.com/forgenotes/changelog-gen/internal/config"
	"github.com/forgenotes/changelog-gen/internal/ghclient"
	"github.com/forgenotes/changelog-gen/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "changelog-gen <owner/repo>",
	Short: "Generate a release changelog from milestone pull requests",
	Long: `changelog-gen queries the GitHub API for the merged pull requests of a
milestone, groups them by label and writes a markdown changelog.

The milestone defaults to the most recently updated open one. The output
goes into a fresh per-milestone file, or with --update is prepended into
an existing changelog whose original content is kept in a .bak backup.

A GITHUB_TOKEN environment variable raises the API rate limits.

Examples:
  # changelog for the most recently updated open milestone
  changelog-gen neuropoly/spinalcordtoolbox

  # a specific milestone, prepended into CHANGES.md
  changelog-gen org/repo --milestone "Release 4.2" --update --name CHANGES.md

  # two-level grouping: header labels partitioned by labels
  changelog-gen org/repo --header-labels backend,frontend --labels bug,enhancement`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		update, _ := cmd.Flags().GetBool("update")
		name, _ := cmd.Flags().GetString("name")

		lines, ms, owner, repo, err := generate(cmd, args[0])
		if err != nil {
			return err
		}

		if update {
			backup, err := changelog.Update(name, lines)
			if err != nil {
				return err
			}
			logging.Infof("backup created: %s", backup)
			logging.Infof("changelog written into %s", name)
			return nil
		}

		written, err := changelog.WriteNew(owner, repo, ms.GetNumber(), lines)
		if err != nil {
			return err
		}
		logging.Infof("changelog written into %s", written)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "INFO", "logging level (DEBUG, INFO, WARNING, ERROR)")
	rootCmd.PersistentFlags().String("config", "", "YAML file overriding the per-project label configuration")
	rootCmd.PersistentFlags().String("milestone", "", "milestone to generate the changelog for (default: most recently updated open milestone)")
	rootCmd.PersistentFlags().StringSlice("labels", nil, "label groups in section order (overrides the project configuration)")
	rootCmd.PersistentFlags().StringSlice("header-labels", nil, "header labels enabling two-level grouping")
	rootCmd.PersistentFlags().Bool("use-milestone-due-date", false, "use the milestone due date as the release date instead of today")

	rootCmd.Flags().Bool("update", false, "update an existing changelog file by prepending to it")
	rootCmd.Flags().String("name", "CHANGES.md", "existing changelog file to use with --update")
}

// Execute runs the root command. Fatal errors are printed once, here.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.Errorf("%v", err)
	}
	return err
}

// generate runs one full generation for the shared flag set: config,
// client, rate limit check and document assembly.
func generate(cmd *cobra.Command, repoURL string) ([]string, *github.Milestone, string, string, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	configPath, _ := cmd.Flags().GetString("config")
	milestoneTitle, _ := cmd.Flags().GetString("milestone")
	labels, _ := cmd.Flags().GetStringSlice("labels")
	headerLabels, _ := cmd.Flags().GetStringSlice("header-labels")
	useDueDate, _ := cmd.Flags().GetBool("use-milestone-due-date")

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, nil, "", "", err
	}
	logging.SetLevel(level)

	owner, repo, err := splitRepoURL(repoURL)
	if err != nil {
		return nil, nil, "", "", err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, "", "", err
	}
	project := cfg.ProjectFor(repo)
	if len(labels) > 0 {
		project.Labels = labels
	}
	if len(headerLabels) > 0 {
		project.HeaderLabels = headerLabels
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := ghclient.New(ctx, cfg.Token, owner, repo)
	if err := client.CheckRateLimit(ctx); err != nil {
		return nil, nil, "", "", err
	}

	stop := startSpinner("fetching pull requests")
	lines, ms, err := changelog.Generate(ctx, client, changelog.Options{
		Milestone:           milestoneTitle,
		Labels:              project.Labels,
		HeaderLabels:        project.HeaderLabels,
		Marker:              project.Marker,
		UseMilestoneDueDate: useDueDate,
	})
	stop()
	if err != nil {
		return nil, nil, "", "", err
	}
	return lines, ms, owner, repo, nil
}

// splitRepoURL splits an "owner/repo" identifier.
func splitRepoURL(repoURL string) (owner, repo string, err error) {
	parts := strings.Split(repoURL, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be in the form <owner>/<repo>, got %q", repoURL)
	}
	return parts[0], parts[1], nil
}

// startSpinner shows progress while the API calls run, but only when
// stdout is a terminal. The returned func stops it.
func startSpinner(msg string) func() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
