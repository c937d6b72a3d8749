package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func TestClusterCRUD(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/clusters":
			var input mmodel.CreateClusterInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, "cluster-a", input.Name)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(mmodel.Cluster{ID: "clu-1", Name: input.Name})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/clusters":
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			json.NewEncoder(w).Encode([]mmodel.Cluster{{ID: "clu-1"}})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/clusters/clu-1":
			json.NewEncoder(w).Encode(mmodel.Cluster{ID: "clu-1", Name: "cluster-a"})
		case r.Method == http.MethodPatch && r.URL.Path == "/v1/clusters/clu-1":
			json.NewEncoder(w).Encode(mmodel.Cluster{ID: "clu-1", Name: "cluster-b"})
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/clusters/clu-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	created, err := c.CreateCluster(context.Background(), &mmodel.CreateClusterInput{Name: "cluster-a", ClientID: "azp-1"})
	require.NoError(t, err)
	assert.Equal(t, "clu-1", created.ID)

	list, err := c.ListClusters(context.Background(), 50, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := c.Cluster(context.Background(), "clu-1")
	require.NoError(t, err)
	assert.Equal(t, "cluster-a", got.Name)

	updated, err := c.UpdateCluster(context.Background(), "clu-1", &mmodel.UpdateClusterInput{Name: "cluster-b"})
	require.NoError(t, err)
	assert.Equal(t, "cluster-b", updated.Name)

	require.NoError(t, c.DeleteCluster(context.Background(), "clu-1"))
}

func TestConfigurationCRUD(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/configurations":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(mmodel.Configuration{ID: "cfg-1", Name: "flex-main"})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/configurations":
			json.NewEncoder(w).Encode([]mmodel.Configuration{{ID: "cfg-1"}})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/configurations/cfg-1":
			json.NewEncoder(w).Encode(mmodel.Configuration{ID: "cfg-1", GraceTime: 60})
		case r.Method == http.MethodPatch && r.URL.Path == "/v1/configurations/cfg-1":
			json.NewEncoder(w).Encode(mmodel.Configuration{ID: "cfg-1", GraceTime: 120})
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/configurations/cfg-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	created, err := c.CreateConfiguration(context.Background(), &mmodel.CreateConfigurationInput{
		Name: "flex-main", ClusterID: "clu-1", Type: mmodel.ConfigurationTypeFlexLM, GraceTime: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "cfg-1", created.ID)

	list, err := c.ListConfigurations(context.Background(), 50, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := c.Configuration(context.Background(), "cfg-1")
	require.NoError(t, err)
	assert.Equal(t, 60, got.GraceTime)

	graceTime := 120
	updated, err := c.UpdateConfiguration(context.Background(), "cfg-1", &mmodel.UpdateConfigurationInput{GraceTime: &graceTime})
	require.NoError(t, err)
	assert.Equal(t, 120, updated.GraceTime)

	require.NoError(t, c.DeleteConfiguration(context.Background(), "cfg-1"))
}

func TestProductCRUD(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/products":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(mmodel.Product{ID: "prd-1", Name: "ansys"})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/products":
			json.NewEncoder(w).Encode([]mmodel.Product{{ID: "prd-1"}})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/products/prd-1":
			json.NewEncoder(w).Encode(mmodel.Product{ID: "prd-1", Name: "ansys"})
		case r.Method == http.MethodPatch && r.URL.Path == "/v1/products/prd-1":
			json.NewEncoder(w).Encode(mmodel.Product{ID: "prd-1", Name: "ansys-renamed"})
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/products/prd-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	created, err := c.CreateProduct(context.Background(), &mmodel.CreateProductInput{Name: "ansys"})
	require.NoError(t, err)
	assert.Equal(t, "prd-1", created.ID)

	list, err := c.ListProducts(context.Background(), 50, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := c.Product(context.Background(), "prd-1")
	require.NoError(t, err)
	assert.Equal(t, "ansys", got.Name)

	updated, err := c.UpdateProduct(context.Background(), "prd-1", &mmodel.UpdateProductInput{Name: "ansys-renamed"})
	require.NoError(t, err)
	assert.Equal(t, "ansys-renamed", updated.Name)

	require.NoError(t, c.DeleteProduct(context.Background(), "prd-1"))
}

func TestFeatureCRUD(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/features":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(mmodel.Feature{ID: "feat-1", Name: "mech"})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/features":
			json.NewEncoder(w).Encode([]mmodel.Feature{{ID: "feat-1"}})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/features/feat-1":
			json.NewEncoder(w).Encode(mmodel.Feature{ID: "feat-1", Reserved: 2})
		case r.Method == http.MethodPatch && r.URL.Path == "/v1/features/feat-1":
			json.NewEncoder(w).Encode(mmodel.Feature{ID: "feat-1", Reserved: 5})
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/features/feat-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	created, err := c.CreateFeature(context.Background(), &mmodel.CreateFeatureInput{
		Name: "mech", ProductID: "prd-1", ConfigurationID: "cfg-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "feat-1", created.ID)

	list, err := c.ListFeatures(context.Background(), 50, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := c.Feature(context.Background(), "feat-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Reserved)

	reserved := 5
	updated, err := c.UpdateFeature(context.Background(), "feat-1", &mmodel.UpdateFeatureInput{Reserved: &reserved})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Reserved)

	require.NoError(t, c.DeleteFeature(context.Background(), "feat-1"))
}

func TestLicenseServerCRUD(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/configurations/cfg-1/license-servers":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(mmodel.LicenseServer{ID: "srv-1", Host: "flexlm.local", Port: 27000})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/license-servers":
			json.NewEncoder(w).Encode([]mmodel.LicenseServer{{ID: "srv-1"}})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/license-servers/srv-1":
			json.NewEncoder(w).Encode(mmodel.LicenseServer{ID: "srv-1", Port: 27000})
		case r.Method == http.MethodPatch && r.URL.Path == "/v1/license-servers/srv-1":
			json.NewEncoder(w).Encode(mmodel.LicenseServer{ID: "srv-1", Port: 27001})
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/license-servers/srv-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	created, err := c.CreateLicenseServer(context.Background(), &mmodel.CreateLicenseServerInput{
		ConfigurationID: "cfg-1", Host: "flexlm.local", Port: 27000,
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)

	list, err := c.ListLicenseServers(context.Background(), 50, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := c.LicenseServer(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, 27000, got.Port)

	updated, err := c.UpdateLicenseServer(context.Background(), "srv-1", &mmodel.UpdateLicenseServerInput{Port: 27001})
	require.NoError(t, err)
	assert.Equal(t, 27001, updated.Port)

	require.NoError(t, c.DeleteLicenseServer(context.Background(), "srv-1"))
}
