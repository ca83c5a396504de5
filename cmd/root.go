package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the webteam-hubot application
var rootCmd = &cobra.Command{
	Use:   "webteam-hubot",
	Short: "Mattermost slash-command bot for the web team",
	Long: `webteam-hubot serves the web team's Mattermost slash commands:

  /meet     generate a Google Meet link for a list of participants
  /explain  look up a term in the team glossary spreadsheet

The glossary lives in a Google Spreadsheet read with a service account.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "webteam-hubot version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
