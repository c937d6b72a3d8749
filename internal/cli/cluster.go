package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func newClusterCommand(f *Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Manage clusters",
	}

	cmd.AddCommand(
		newClusterCreateCommand(f),
		newClusterListCommand(f),
		newClusterGetCommand(f),
		newClusterUpdateCommand(f),
		newClusterDeleteCommand(f),
	)

	return cmd
}

func newClusterCreateCommand(f *Factory) *cobra.Command {
	var name, clientID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := f.Client.CreateCluster(cmd.Context(), &mmodel.CreateClusterInput{Name: name, ClientID: clientID})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "created cluster %s\n", cluster.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "cluster name")
	cmd.Flags().StringVar(&clientID, "client-id", "", "the agent's OAuth client_id for this cluster")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	cobra.CheckErr(cmd.MarkFlagRequired("client-id"))

	return cmd
}

func newClusterListCommand(f *Factory) *cobra.Command {
	var limit, page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			clusters, err := f.Client.ListClusters(cmd.Context(), limit, page)
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tNAME\tCLIENT_ID")

			for _, c := range clusters {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.ClientID)
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newClusterGetCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := f.Client.Cluster(cmd.Context(), args[0])
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tNAME\tCLIENT_ID")
			fmt.Fprintf(w, "%s\t%s\t%s\n", cluster.ID, cluster.Name, cluster.ClientID)

			return w.Flush()
		},
	}
}

func newClusterUpdateCommand(f *Factory) *cobra.Command {
	var name, clientID string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := f.Client.UpdateCluster(cmd.Context(), args[0], &mmodel.UpdateClusterInput{Name: name, ClientID: clientID})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "updated cluster %s\n", cluster.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "cluster name")
	cmd.Flags().StringVar(&clientID, "client-id", "", "the agent's OAuth client_id for this cluster")

	return cmd
}

func newClusterDeleteCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Client.DeleteCluster(cmd.Context(), args[0]); err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "deleted cluster %s\n", args[0])

			return nil
		},
	}
}
