package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func newFeatureCommand(f *Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Manage features",
	}

	cmd.AddCommand(
		newFeatureCreateCommand(f),
		newFeatureListCommand(f),
		newFeatureGetCommand(f),
		newFeatureUpdateCommand(f),
		newFeatureDeleteCommand(f),
	)

	return cmd
}

func newFeatureCreateCommand(f *Factory) *cobra.Command {
	var (
		name            string
		productID       string
		configurationID string
		reserved        int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new feature",
		RunE: func(cmd *cobra.Command, args []string) error {
			feature, err := f.Client.CreateFeature(cmd.Context(), &mmodel.CreateFeatureInput{
				Name:            name,
				ProductID:       productID,
				ConfigurationID: configurationID,
				Reserved:        reserved,
			})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "created feature %s\n", feature.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "feature name, e.g. mech")
	cmd.Flags().StringVar(&productID, "product-id", "", "owning product id")
	cmd.Flags().StringVar(&configurationID, "configuration-id", "", "configuration whose adapter reports this feature's usage")
	cmd.Flags().IntVar(&reserved, "reserved", 0, "seats held back from the agent-reported total")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	cobra.CheckErr(cmd.MarkFlagRequired("product-id"))
	cobra.CheckErr(cmd.MarkFlagRequired("configuration-id"))

	return cmd
}

func newFeatureListCommand(f *Factory) *cobra.Command {
	var limit, page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List features",
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := f.Client.ListFeatures(cmd.Context(), limit, page)
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tNAME\tPRODUCT_ID\tCONFIGURATION_ID\tRESERVED")

			for _, ft := range features {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", ft.ID, ft.Name, ft.ProductID, ft.ConfigurationID, ft.Reserved)
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newFeatureGetCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feature, err := f.Client.Feature(cmd.Context(), args[0])
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tNAME\tPRODUCT_ID\tCONFIGURATION_ID\tRESERVED")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				feature.ID, feature.Name, feature.ProductID, feature.ConfigurationID, feature.Reserved)

			return w.Flush()
		},
	}
}

func newFeatureUpdateCommand(f *Factory) *cobra.Command {
	var (
		name        string
		reserved    int
		setReserved bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &mmodel.UpdateFeatureInput{Name: name}
			if setReserved {
				input.Reserved = &reserved
			}

			feature, err := f.Client.UpdateFeature(cmd.Context(), args[0], input)
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "updated feature %s\n", feature.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "feature name")
	cmd.Flags().IntVar(&reserved, "reserved", 0, "seats held back from the agent-reported total")
	cmd.Flags().BoolVar(&setReserved, "set-reserved", false, "apply --reserved (distinguishes 0 from unset)")

	return cmd
}

func newFeatureDeleteCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Client.DeleteFeature(cmd.Context(), args[0]); err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "deleted feature %s\n", args[0])

			return nil
		},
	}
}
