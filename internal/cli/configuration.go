package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func newConfigurationCommand(f *Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configuration",
		Short: "Manage configurations",
	}

	cmd.AddCommand(
		newConfigurationCreateCommand(f),
		newConfigurationListCommand(f),
		newConfigurationGetCommand(f),
		newConfigurationUpdateCommand(f),
		newConfigurationDeleteCommand(f),
	)

	return cmd
}

func newConfigurationCreateCommand(f *Factory) *cobra.Command {
	var (
		name      string
		clusterID string
		confType  string
		graceTime int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			configuration, err := f.Client.CreateConfiguration(cmd.Context(), &mmodel.CreateConfigurationInput{
				Name:      name,
				ClusterID: clusterID,
				Type:      mmodel.ConfigurationType(confType),
				GraceTime: graceTime,
			})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "created configuration %s\n", configuration.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "configuration name")
	cmd.Flags().StringVar(&clusterID, "cluster-id", "", "owning cluster id")
	cmd.Flags().StringVar(&confType, "type", "", "vendor adapter: flexlm, rlm, lsdyna, lmx, olicense")
	cmd.Flags().IntVar(&graceTime, "grace-time", 0, "job run time in seconds after which the agent releases the job's bookings")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	cobra.CheckErr(cmd.MarkFlagRequired("cluster-id"))
	cobra.CheckErr(cmd.MarkFlagRequired("type"))

	return cmd
}

func newConfigurationListCommand(f *Factory) *cobra.Command {
	var limit, page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			configurations, err := f.Client.ListConfigurations(cmd.Context(), limit, page)
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tNAME\tCLUSTER_ID\tTYPE\tGRACE_TIME")

			for _, c := range configurations {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.Name, c.ClusterID, c.Type, c.GraceTime)
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newConfigurationGetCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configuration, err := f.Client.Configuration(cmd.Context(), args[0])
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tNAME\tCLUSTER_ID\tTYPE\tGRACE_TIME")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				configuration.ID, configuration.Name, configuration.ClusterID, configuration.Type, configuration.GraceTime)

			return w.Flush()
		},
	}
}

func newConfigurationUpdateCommand(f *Factory) *cobra.Command {
	var (
		name      string
		confType  string
		graceTime int
		setGrace  bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &mmodel.UpdateConfigurationInput{Name: name, Type: mmodel.ConfigurationType(confType)}
			if setGrace {
				input.GraceTime = &graceTime
			}

			configuration, err := f.Client.UpdateConfiguration(cmd.Context(), args[0], input)
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "updated configuration %s\n", configuration.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "configuration name")
	cmd.Flags().StringVar(&confType, "type", "", "vendor adapter: flexlm, rlm, lsdyna, lmx, olicense")
	cmd.Flags().IntVar(&graceTime, "grace-time", 0, "job run time in seconds after which the agent releases the job's bookings")
	cmd.Flags().BoolVar(&setGrace, "set-grace-time", false, "apply --grace-time (distinguishes 0 from unset)")

	return cmd
}

func newConfigurationDeleteCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Client.DeleteConfiguration(cmd.Context(), args[0]); err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "deleted configuration %s\n", args[0])

			return nil
		},
	}
}
