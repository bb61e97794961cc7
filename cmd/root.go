package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "subtrack",
		Short:         "Track personal and business subscriptions",
		Long:          "subtrack records recurring subscriptions per user, tracks their price and status history, and reports monthly and yearly spend from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipWiring(cmd) {
				return nil
			}
			return app.wire(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.opts.user, "user", "", "act as this user instead of the current session")
	flags.StringVar(&app.opts.configPath, "config", "", "config file (default ~/.subtrack/config.toml)")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSessionCmd(app),
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newStatusCmd(app),
		newStatusAliasCmd(app, "pause", "Pause a subscription", "paused"),
		newStatusAliasCmd(app, "resume", "Reactivate a subscription", "active"),
		newStatusAliasCmd(app, "cancel", "Cancel a subscription", "cancelled"),
		newPriceCmd(app),
		newDeleteCmd(app),
		newTotalsCmd(app),
		newDashboardCmd(app),
		newReportCmd(app),
		newExportCmd(app),
	)

	return rootCmd
}

func skipWiring(cmd *cobra.Command) bool {
	return cmd.Name() == "version" || cmd.Name() == "help"
}
