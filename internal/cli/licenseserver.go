package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func newLicenseServerCommand(f *Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "license-server",
		Aliases: []string{"license-servers"},
		Short:   "Manage license-server endpoints",
	}

	cmd.AddCommand(
		newLicenseServerCreateCommand(f),
		newLicenseServerListCommand(f),
		newLicenseServerGetCommand(f),
		newLicenseServerUpdateCommand(f),
		newLicenseServerDeleteCommand(f),
	)

	return cmd
}

func newLicenseServerCreateCommand(f *Factory) *cobra.Command {
	var (
		configurationID string
		host            string
		port            int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new license-server endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := f.Client.CreateLicenseServer(cmd.Context(), &mmodel.CreateLicenseServerInput{
				ConfigurationID: configurationID,
				Host:            host,
				Port:            port,
			})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "created license server %s\n", server.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&configurationID, "configuration-id", "", "owning configuration id")
	cmd.Flags().StringVar(&host, "host", "", "license-server host")
	cmd.Flags().IntVar(&port, "port", 0, "license-server port")
	cobra.CheckErr(cmd.MarkFlagRequired("configuration-id"))
	cobra.CheckErr(cmd.MarkFlagRequired("host"))
	cobra.CheckErr(cmd.MarkFlagRequired("port"))

	return cmd
}

func newLicenseServerListCommand(f *Factory) *cobra.Command {
	var limit, page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List license-server endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			servers, err := f.Client.ListLicenseServers(cmd.Context(), limit, page)
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tCONFIGURATION_ID\tHOST\tPORT")

			for _, s := range servers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.ID, s.ConfigurationID, s.Host, s.Port)
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newLicenseServerGetCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one license-server endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := f.Client.LicenseServer(cmd.Context(), args[0])
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tCONFIGURATION_ID\tHOST\tPORT")
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", server.ID, server.ConfigurationID, server.Host, server.Port)

			return w.Flush()
		},
	}
}

func newLicenseServerUpdateCommand(f *Factory) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a license-server endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := f.Client.UpdateLicenseServer(cmd.Context(), args[0], &mmodel.UpdateLicenseServerInput{Host: host, Port: port})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "updated license server %s\n", server.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "license-server host")
	cmd.Flags().IntVar(&port, "port", 0, "license-server port")

	return cmd
}

func newLicenseServerDeleteCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a license-server endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Client.DeleteLicenseServer(cmd.Context(), args[0]); err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "deleted license server %s\n", args[0])

			return nil
		},
	}
}
