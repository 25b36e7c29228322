// Package msgraph provides a tenant source that lists the sensitive information
// types published in a tenant via the Microsoft Graph beta API.
package msgraph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/cockroachdb/errors"
	"github.com/marcusjacobson/sitlib"
	"github.com/marcusjacobson/sitlib/assets"
	"github.com/marcusjacobson/sitlib/internal/environment"
	"github.com/marcusjacobson/sitlib/to"
)

const sensitiveTypesPath = "/beta/dataClassification/sensitiveTypes"

var _ sitlib.TenantSource = (*Client)(nil)

// ClientOptions are options for the Graph client.
type ClientOptions struct {
	Endpoint   string       // Endpoint overrides the Graph endpoint, defaults to the environment configuration
	HTTPClient *http.Client // HTTPClient overrides the default HTTP client
}

// Client lists sensitive information types from Microsoft Graph.
// Create with NewClient.
type Client struct {
	endpoint   string
	scopes     []string
	cred       azcore.TokenCredential
	httpClient *http.Client
}

// NewClient creates a Graph client using the supplied credential,
// e.g. the one returned by auth.NewToken.
func NewClient(cred azcore.TokenCredential, opts *ClientOptions) (*Client, error) {
	if cred == nil {
		return nil, errors.New("credential must not be nil")
	}
	if opts == nil {
		opts = &ClientOptions{}
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = environment.GraphUrl()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		scopes:     []string{endpoint + "/.default"},
		cred:       cred,
		httpClient: httpClient,
	}, nil
}

// sensitiveTypesPage is one page of the Graph list response.
type sensitiveTypesPage struct {
	Value    []sensitiveType `json:"value"`
	NextLink string          `json:"@odata.nextLink"`
}

type sensitiveType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	PublisherName   string `json:"publisherName"`
	RulePackageID   string `json:"rulePackageId"`
	RulePackageType string `json:"rulePackageType"`
	State           string `json:"state"`
}

func (st sensitiveType) toDefinition() *assets.SitDefinition {
	def := assets.NewSitDefinition(st.ID, st.Name)
	if st.Description != "" {
		def.Description = to.Ptr(st.Description)
	}
	if st.PublisherName != "" {
		def.Publisher = to.Ptr(st.PublisherName)
	}
	if st.RulePackageID != "" {
		def.RulePackageID = to.Ptr(st.RulePackageID)
	}
	if st.RulePackageType != "" {
		def.Type = to.Ptr(st.RulePackageType)
	}
	if st.State != "" {
		def.State = to.Ptr(st.State)
	}
	return def
}

// SensitiveTypes returns the definitions published in the tenant, following
// @odata.nextLink until all pages have been consumed.
func (c *Client) SensitiveTypes(ctx context.Context) ([]*assets.SitDefinition, error) {
	defs := make([]*assets.SitDefinition, 0)
	url := c.endpoint + sensitiveTypesPath
	for url != "" {
		page, err := c.getPage(ctx, url)
		if err != nil {
			return nil, err
		}
		for _, st := range page.Value {
			defs = append(defs, st.toDefinition())
		}
		url = page.NextLink
	}
	return defs, nil
}

// getPage fetches a single page of the list response.
func (c *Client) getPage(ctx context.Context, url string) (*sensitiveTypesPage, error) {
	tk, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: c.scopes})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Graph access token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Graph request")
	}
	req.Header.Set("Authorization", "Bearer "+tk.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list sensitive types from %s", url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read Graph response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("Graph request failed with status %d: %s", resp.StatusCode, string(body))
	}

	page := new(sensitiveTypesPage)
	if err := json.Unmarshal(body, page); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal Graph response")
	}
	return page, nil
}
