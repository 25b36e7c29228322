// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

/*
Package auth provides a small helper for creating an Azure Entra (azcore.TokenCredential)
using well-known Azure environment variables and conventions.

It wraps azidentity.NewDefaultAzureCredential with environment-driven cloud and tenant
selection so calling code can obtain a credential suitable for querying Microsoft Graph
without duplicating environment parsing logic.

Usage

	import "github.com/marcusjacobson/sitlib/internal/auth"

	cred, err := auth.NewToken()
	if err != nil {
	    // handle error
	}
	// use cred with clients that accept azcore.TokenCredential

# Environment variables

NewToken reads the following environment variables:

- ARM_ENVIRONMENT, AZURE_ENVIRONMENT
- ARM_TENANT_ID, AZURE_TENANT_ID

plus the variables understood by the azidentity default credential chain
(AZURE_CLIENT_ID, AZURE_CLIENT_SECRET, AZURE_FEDERATED_TOKEN_FILE, and so on).

# Notes

  - The package maps environment names ("public", "usgovernment", "china") to the
    corresponding Azure cloud configuration.
  - The helper favors non-interactive credential flows appropriate for CI/CD and automated
    scenarios, falling back to the Azure CLI for local use.
*/
package auth
