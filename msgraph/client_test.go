// Copyright (c) Microsoft Corporation 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package msgraph

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokenCredential struct {
	err error
}

func (s *staticTokenCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if s.err != nil {
		return azcore.AccessToken{}, s.err
	}
	return azcore.AccessToken{
		Token:     "test-token",
		ExpiresOn: time.Now().Add(time.Hour),
	}, nil
}

func TestNewClientNilCredential(t *testing.T) {
	t.Parallel()
	_, err := NewClient(nil, nil)
	assert.ErrorContains(t, err, "credential must not be nil")
}

func TestSensitiveTypesSinglePage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sensitiveTypesPath, r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"value": [
				{
					"id": "8d5a7c3e-9f41-4b6a-a7e2-1c9d23b0f5a4",
					"name": "Contoso Employee ID",
					"publisherName": "Contoso IT",
					"rulePackageId": "15e75ee5-f38e-4f75-b3db-773a6c233ab6",
					"rulePackageType": "Custom",
					"state": "Enabled"
				},
				{
					"id": "50842eb7-edc8-4019-85dd-5a5c1f2bb085",
					"name": "Credit Card Number",
					"publisherName": "Microsoft Corporation"
				}
			]
		}`)
	}))
	defer srv.Close()

	client, err := NewClient(&staticTokenCredential{}, &ClientOptions{Endpoint: srv.URL})
	require.NoError(t, err)
	defs, err := client.SensitiveTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "8d5a7c3e-9f41-4b6a-a7e2-1c9d23b0f5a4", *defs[0].ID)
	assert.Equal(t, "Contoso Employee ID", *defs[0].Name)
	assert.Equal(t, "Contoso IT", *defs[0].Publisher)
	assert.Equal(t, "Custom", *defs[0].Type)
	assert.Equal(t, "Enabled", *defs[0].State)
	assert.Equal(t, "Credit Card Number", *defs[1].Name)
	assert.Nil(t, defs[1].Type)
}

// TestSensitiveTypesPaging tests that @odata.nextLink is followed until exhausted.
func TestSensitiveTypesPaging(t *testing.T) {
	t.Parallel()
	requests := 0
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("$skiptoken") == "" {
			fmt.Fprintf(w, `{
				"value": [{"id": "8d5a7c3e-9f41-4b6a-a7e2-1c9d23b0f5a4", "name": "Contoso Employee ID"}],
				"@odata.nextLink": "%s%s?$skiptoken=page2"
			}`, srv.URL, sensitiveTypesPath)
			return
		}
		fmt.Fprint(w, `{
			"value": [{"id": "f3b9c2d1-6e87-4a05-9c3b-7d2e8a41c6f0", "name": "Project Code Word"}]
		}`)
	}))
	defer srv.Close()

	client, err := NewClient(&staticTokenCredential{}, &ClientOptions{Endpoint: srv.URL})
	require.NoError(t, err)
	defs, err := client.SensitiveTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	require.Len(t, defs, 2)
	assert.Equal(t, "Contoso Employee ID", *defs[0].Name)
	assert.Equal(t, "Project Code Word", *defs[1].Name)
}

func TestSensitiveTypesHTTPError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"code": "Forbidden"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(&staticTokenCredential{}, &ClientOptions{Endpoint: srv.URL})
	require.NoError(t, err)
	_, err = client.SensitiveTypes(context.Background())
	assert.ErrorContains(t, err, "status 403")
}

func TestSensitiveTypesTokenError(t *testing.T) {
	t.Parallel()
	tokenErr := errors.New("no credential available")
	client, err := NewClient(&staticTokenCredential{err: tokenErr}, &ClientOptions{Endpoint: "http://localhost:0"})
	require.NoError(t, err)
	_, err = client.SensitiveTypes(context.Background())
	assert.ErrorIs(t, err, tokenErr)
}

func TestSensitiveTypesInvalidJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer srv.Close()

	client, err := NewClient(&staticTokenCredential{}, &ClientOptions{Endpoint: srv.URL})
	require.NoError(t, err)
	_, err = client.SensitiveTypes(context.Background())
	assert.ErrorContains(t, err, "failed to unmarshal Graph response")
}
