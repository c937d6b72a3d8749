package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func TestParseBookingItems(t *testing.T) {
	items, err := parseBookingItems([]string{"ansys.mech=2", "ansys.cfd=1"})
	require.NoError(t, err)
	assert.Equal(t, []mmodel.BookingRequestItem{
		{ProductFeature: "ansys.mech", Quantity: 2},
		{ProductFeature: "ansys.cfd", Quantity: 1},
	}, items)
}

func TestParseBookingItemsRejectsMalformedValue(t *testing.T) {
	_, err := parseBookingItems([]string{"ansys.mech"})
	assert.Error(t, err)
}

func TestParseBookingItemsRejectsNonIntegerQuantity(t *testing.T) {
	_, err := parseBookingItems([]string{"ansys.mech=many"})
	assert.Error(t, err)
}

func TestBookingCreateCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/bookings", r.URL.Path)

		var input mmodel.BookingCreateInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "job-1", input.SlurmJobID)
		assert.Equal(t, []mmodel.BookingRequestItem{{ProductFeature: "ansys.mech", Quantity: 2}}, input.Bookings)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]mmodel.Booking{{ID: "bk-1", FeatureID: "feat-1", Quantity: 2, State: mmodel.BookingStateCreated}})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{
		"booking", "create",
		"--slurm-job-id", "job-1",
		"--cluster-id", "clu-1",
		"--username", "alice",
		"--lead-host", "node01",
		"--book", "ansys.mech=2",
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "bk-1")
}

func TestBookingListCommandRendersNotFoundWhenEmpty(t *testing.T) {
	f, _, errOut := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]mmodel.Booking{})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"booking", "list", "clu-1", "job-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "no bookings held by job job-1")
}

func TestBookingDeleteCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"booking", "delete", "clu-1", "job-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "released bookings for job job-1")
}
