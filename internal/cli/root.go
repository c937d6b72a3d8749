package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds lmctl's full command tree: one subcommand group per
// ledger resource, each built against the same Factory.
func NewRootCommand(f *Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lmctl",
		Short: "lmctl is the operator CLI for the license-manager ledger",
	}

	cmd.SetOut(f.IOStreams.Out)
	cmd.SetErr(f.IOStreams.Err)

	cmd.AddCommand(
		newClusterCommand(f),
		newConfigurationCommand(f),
		newProductCommand(f),
		newFeatureCommand(f),
		newLicenseServerCommand(f),
		newBookingCommand(f),
	)

	// Every leaf already renders its own one-line-subject-plus-hint error via
	// renderError; cobra's default "Error: ..." plus usage dump would just
	// duplicate that on top.
	silenceTree(cmd)

	return cmd
}

func silenceTree(cmd *cobra.Command) {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	for _, child := range cmd.Commands() {
		silenceTree(child)
	}
}
