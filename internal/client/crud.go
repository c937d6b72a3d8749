package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// encode marshals a request body, mapping encoding failures to
// BackendConnectionError so callers never need to special-case it.
func encode(v any) (*bytes.Reader, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, lmerrors.BackendConnectionError{Message: "failed to encode request body", Err: err}
	}

	return bytes.NewReader(body), nil
}

// listPath appends limit/page query parameters to a list endpoint's path.
func listPath(path string, limit, page int) string {
	return fmt.Sprintf("%s?limit=%d&page=%d", path, limit, page)
}

// --- clusters ---

// CreateCluster registers a new cluster.
func (c *Client) CreateCluster(ctx context.Context, input *mmodel.CreateClusterInput) (*mmodel.Cluster, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPost, "/v1/clusters", body)
	if err != nil {
		return nil, err
	}

	var out mmodel.Cluster
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListClusters returns a page of clusters.
func (c *Client) ListClusters(ctx context.Context, limit, page int) ([]*mmodel.Cluster, error) {
	resp, err := c.Do(ctx, http.MethodGet, listPath("/v1/clusters", limit, page), nil)
	if err != nil {
		return nil, err
	}

	var out []*mmodel.Cluster
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Cluster retrieves a cluster by id.
func (c *Client) Cluster(ctx context.Context, id string) (*mmodel.Cluster, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/clusters/"+id, nil)
	if err != nil {
		return nil, err
	}

	var out mmodel.Cluster
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateCluster applies a partial update to a cluster.
func (c *Client) UpdateCluster(ctx context.Context, id string, input *mmodel.UpdateClusterInput) (*mmodel.Cluster, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPatch, "/v1/clusters/"+id, body)
	if err != nil {
		return nil, err
	}

	var out mmodel.Cluster
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteCluster removes a cluster.
func (c *Client) DeleteCluster(ctx context.Context, id string) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/v1/clusters/"+id, nil)
	if err != nil {
		return err
	}

	return decode(resp, nil)
}

// --- configurations ---

// CreateConfiguration registers a new configuration under a cluster.
func (c *Client) CreateConfiguration(ctx context.Context, input *mmodel.CreateConfigurationInput) (*mmodel.Configuration, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPost, "/v1/configurations", body)
	if err != nil {
		return nil, err
	}

	var out mmodel.Configuration
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListConfigurations returns a page of configurations.
func (c *Client) ListConfigurations(ctx context.Context, limit, page int) ([]*mmodel.Configuration, error) {
	resp, err := c.Do(ctx, http.MethodGet, listPath("/v1/configurations", limit, page), nil)
	if err != nil {
		return nil, err
	}

	var out []*mmodel.Configuration
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Configuration retrieves a configuration by id.
func (c *Client) Configuration(ctx context.Context, id string) (*mmodel.Configuration, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/configurations/"+id, nil)
	if err != nil {
		return nil, err
	}

	var out mmodel.Configuration
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateConfiguration applies a partial update to a configuration.
func (c *Client) UpdateConfiguration(ctx context.Context, id string, input *mmodel.UpdateConfigurationInput) (*mmodel.Configuration, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPatch, "/v1/configurations/"+id, body)
	if err != nil {
		return nil, err
	}

	var out mmodel.Configuration
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteConfiguration removes a configuration.
func (c *Client) DeleteConfiguration(ctx context.Context, id string) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/v1/configurations/"+id, nil)
	if err != nil {
		return err
	}

	return decode(resp, nil)
}

// --- products ---

// CreateProduct registers a new licensed product.
func (c *Client) CreateProduct(ctx context.Context, input *mmodel.CreateProductInput) (*mmodel.Product, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPost, "/v1/products", body)
	if err != nil {
		return nil, err
	}

	var out mmodel.Product
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListProducts returns a page of products.
func (c *Client) ListProducts(ctx context.Context, limit, page int) ([]*mmodel.Product, error) {
	resp, err := c.Do(ctx, http.MethodGet, listPath("/v1/products", limit, page), nil)
	if err != nil {
		return nil, err
	}

	var out []*mmodel.Product
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Product retrieves a product by id.
func (c *Client) Product(ctx context.Context, id string) (*mmodel.Product, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/products/"+id, nil)
	if err != nil {
		return nil, err
	}

	var out mmodel.Product
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateProduct applies a partial update to a product.
func (c *Client) UpdateProduct(ctx context.Context, id string, input *mmodel.UpdateProductInput) (*mmodel.Product, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPatch, "/v1/products/"+id, body)
	if err != nil {
		return nil, err
	}

	var out mmodel.Product
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/v1/products/"+id, nil)
	if err != nil {
		return err
	}

	return decode(resp, nil)
}

// --- features ---

// CreateFeature registers a new feature of a product against a configuration.
func (c *Client) CreateFeature(ctx context.Context, input *mmodel.CreateFeatureInput) (*mmodel.Feature, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPost, "/v1/features", body)
	if err != nil {
		return nil, err
	}

	var out mmodel.Feature
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListFeatures returns a page of features.
func (c *Client) ListFeatures(ctx context.Context, limit, page int) ([]*mmodel.Feature, error) {
	resp, err := c.Do(ctx, http.MethodGet, listPath("/v1/features", limit, page), nil)
	if err != nil {
		return nil, err
	}

	var out []*mmodel.Feature
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Feature retrieves a feature by id.
func (c *Client) Feature(ctx context.Context, id string) (*mmodel.Feature, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/features/"+id, nil)
	if err != nil {
		return nil, err
	}

	var out mmodel.Feature
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateFeature applies a partial update to a feature.
func (c *Client) UpdateFeature(ctx context.Context, id string, input *mmodel.UpdateFeatureInput) (*mmodel.Feature, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPatch, "/v1/features/"+id, body)
	if err != nil {
		return nil, err
	}

	var out mmodel.Feature
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteFeature removes a feature.
func (c *Client) DeleteFeature(ctx context.Context, id string) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/v1/features/"+id, nil)
	if err != nil {
		return err
	}

	return decode(resp, nil)
}

// --- license servers ---

// CreateLicenseServer registers a new license-server endpoint under a
// configuration.
func (c *Client) CreateLicenseServer(ctx context.Context, input *mmodel.CreateLicenseServerInput) (*mmodel.LicenseServer, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/v1/configurations/%s/license-servers", input.ConfigurationID)

	resp, err := c.Do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	var out mmodel.LicenseServer
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListLicenseServers returns a page of license servers.
func (c *Client) ListLicenseServers(ctx context.Context, limit, page int) ([]*mmodel.LicenseServer, error) {
	resp, err := c.Do(ctx, http.MethodGet, listPath("/v1/license-servers", limit, page), nil)
	if err != nil {
		return nil, err
	}

	var out []*mmodel.LicenseServer
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// LicenseServer retrieves a license server by id.
func (c *Client) LicenseServer(ctx context.Context, id string) (*mmodel.LicenseServer, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/license-servers/"+id, nil)
	if err != nil {
		return nil, err
	}

	var out mmodel.LicenseServer
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateLicenseServer applies a partial update to a license server.
func (c *Client) UpdateLicenseServer(ctx context.Context, id string, input *mmodel.UpdateLicenseServerInput) (*mmodel.LicenseServer, error) {
	body, err := encode(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPatch, "/v1/license-servers/"+id, body)
	if err != nil {
		return nil, err
	}

	var out mmodel.LicenseServer
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteLicenseServer removes a license server.
func (c *Client) DeleteLicenseServer(ctx context.Context, id string) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/v1/license-servers/"+id, nil)
	if err != nil {
		return err
	}

	return decode(resp, nil)
}
