package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func newBookingCommand(f *Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Manage bookings",
	}

	cmd.AddCommand(
		newBookingCreateCommand(f),
		newBookingListCommand(f),
		newBookingDeleteCommand(f),
	)

	return cmd
}

// parseBookingItems parses a repeated "product.feature=quantity" flag value
// into the wire-level BookingRequestItem list.
func parseBookingItems(items []string) ([]mmodel.BookingRequestItem, error) {
	parsed := make([]mmodel.BookingRequestItem, 0, len(items))

	for _, item := range items {
		productFeature, quantityStr, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --book value %q, want product.feature=quantity", item)
		}

		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in --book value %q: %w", item, err)
		}

		parsed = append(parsed, mmodel.BookingRequestItem{ProductFeature: productFeature, Quantity: quantity})
	}

	return parsed, nil
}

func newBookingCreateCommand(f *Factory) *cobra.Command {
	var (
		slurmJobID string
		clusterID  string
		username   string
		leadHost   string
		book       []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Admit a batch of bookings for a job",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := parseBookingItems(book)
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			bookings, err := f.Client.CreateBookings(cmd.Context(), &mmodel.BookingCreateInput{
				SlurmJobID: slurmJobID,
				ClusterID:  clusterID,
				Username:   username,
				LeadHost:   leadHost,
				Bookings:   items,
			})
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tFEATURE_ID\tQUANTITY\tSTATE")

			for _, b := range bookings {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b.ID, b.FeatureID, b.Quantity, b.State)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&slurmJobID, "slurm-job-id", "", "workload-scheduler job id")
	cmd.Flags().StringVar(&clusterID, "cluster-id", "", "cluster id")
	cmd.Flags().StringVar(&username, "username", "", "job owner")
	cmd.Flags().StringVar(&leadHost, "lead-host", "", "job's lead/batch host")
	cmd.Flags().StringSliceVar(&book, "book", nil, "product.feature=quantity, repeatable")
	cobra.CheckErr(cmd.MarkFlagRequired("slurm-job-id"))
	cobra.CheckErr(cmd.MarkFlagRequired("cluster-id"))
	cobra.CheckErr(cmd.MarkFlagRequired("username"))
	cobra.CheckErr(cmd.MarkFlagRequired("lead-host"))
	cobra.CheckErr(cmd.MarkFlagRequired("book"))

	return cmd
}

func newBookingListCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "list <cluster-id> <slurm-job-id>",
		Short: "List the bookings held by a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookings, err := f.Client.BookingsBySlurmJobID(cmd.Context(), args[0], args[1])
			if err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			if len(bookings) == 0 {
				renderError(f.IOStreams.Err, lmerrors.EntityNotFoundError{EntityType: "booking", Message: fmt.Sprintf("no bookings held by job %s", args[1])})
				return nil
			}

			w := newTableWriter(f.IOStreams.Out)
			fmt.Fprintln(w, "ID\tFEATURE_ID\tQUANTITY\tSTATE")

			for _, b := range bookings {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b.ID, b.FeatureID, b.Quantity, b.State)
			}

			return w.Flush()
		},
	}
}

func newBookingDeleteCommand(f *Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <cluster-id> <slurm-job-id>",
		Short: "Release every booking held by a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Client.ReleaseBookingsBySlurmJobID(cmd.Context(), args[0], args[1]); err != nil {
				renderError(f.IOStreams.Err, err)
				return err
			}

			fmt.Fprintf(f.IOStreams.Out, "released bookings for job %s\n", args[1])

			return nil
		},
	}
}
