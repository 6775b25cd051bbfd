package command

// root.go defines the root command for the moviehub CLI application.
// set up the global flags here.

import (
	"fmt"
	"os"

	"moviehub/cmd/cli/authentication"
	"moviehub/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	apiURL  string // API server URL
	token   string // overrides the keyring token when set
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "moviehub",
		Short: "moviehub - MovieHub Command Line Interface",
		Long: `moviehub is a small client for the MovieHub API. Use it to:
- Browse and search movies and actors
- Create, update and delete movies with their cast and ratings
- Log in and keep the access token in the OS keyring

Use "moviehub [command] --help" to see all available commands.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	apiDefault := os.Getenv("MOVIEHUB_API")
	if apiDefault == "" {
		apiDefault = defaultAPIURL
	}

	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", apiDefault, "API server URL")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (defaults to the stored login)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newAuthCmd(opts))
	rootCmd.AddCommand(newMovieCmd(opts))
	rootCmd.AddCommand(newActorCmd(opts))
	return rootCmd
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// publicClient talks to the API without a token, for read-only commands.
func (o *globalOptions) publicClient() *client.HTTPClient {
	return client.NewHTTPClient(o.apiURL)
}

// authedClient attaches the --token flag or the stored login token.
func (o *globalOptions) authedClient() (*client.HTTPClient, error) {
	httpClient := client.NewHTTPClient(o.apiURL)
	if o.token != "" {
		httpClient.SetToken(o.token)
		return httpClient, nil
	}

	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}
	if creds.APIURL != "" && creds.APIURL != o.apiURL {
		return nil, fmt.Errorf("stored login is for %s, run 'moviehub auth login --api %s'", creds.APIURL, o.apiURL)
	}
	httpClient.SetToken(creds.AccessToken)
	return httpClient, nil
}
