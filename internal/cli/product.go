package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func newProductCommand(f *Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	cmd.AddCommand(
		newProductCreateCommand(f),
		newProductListCommand(f),
		newProductGetCommand(f),
		newProductUpdateCommand(f),
		newProductDeleteCommand(f),
	)

	return cmd
}

func newProductCreateCommand(f *Factory) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new product",
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := f.Client.CreateProduct(cmd.Context(), &mmodel.CreateProductInput{Name: name})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "created product %s\n", product.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name, e.g. ansys")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))

	return cmd
}

func newProductListCommand(f *Factory) *cobra.Command {
	var limit, page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := f.Client.ListProducts(cmd.Context(), limit, page)
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tNAME")

			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Name)
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newProductGetCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := f.Client.Product(cmd.Context(), args[0])
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tNAME")
			fmt.Fprintf(w, "%s\t%s\n", product.ID, product.Name)

			return w.Flush()
		},
	}
}

func newProductUpdateCommand(f *Factory) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := f.Client.UpdateProduct(cmd.Context(), args[0], &mmodel.UpdateProductInput{Name: name})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "updated product %s\n", product.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))

	return cmd
}

func newProductDeleteCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Client.DeleteProduct(cmd.Context(), args[0]); err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "deleted product %s\n", args[0])

			return nil
		},
	}
}
