// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package auth

import (
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// environmentToCloud maps environment names to their corresponding cloud configurations.
var environmentToCloud = map[string]cloud.Configuration{
	"public":       cloud.AzurePublic,
	"usgovernment": cloud.AzureGovernment,
	"china":        cloud.AzureChina,
}

// NewToken creates a new Entra token credential using the azidentity default
// chain (environment, workload identity, managed identity, Azure CLI).
// The cloud configuration and tenant are taken from well-known environment variables.
func NewToken() (azcore.TokenCredential, error) {
	cld := cloud.AzurePublic

	if env := getFirstSetEnvVar("ARM_ENVIRONMENT", "AZURE_ENVIRONMENT"); env != "" {
		if cfg, ok := environmentToCloud[env]; ok {
			cld = cfg
		}
	}

	opts := &azidentity.DefaultAzureCredentialOptions{
		ClientOptions: azcore.ClientOptions{
			Cloud: cld,
		},
		TenantID: getFirstSetEnvVar("ARM_TENANT_ID", "AZURE_TENANT_ID"),
	}

	cred, err := azidentity.NewDefaultAzureCredential(opts)
	if err != nil {
		return nil, fmt.Errorf("auth.NewToken: creating default Azure credential: %w", err)
	}

	return cred, nil
}

func getFirstSetEnvVar(vars ...string) string {
	for _, v := range vars {
		if val := os.Getenv(v); val != "" {
			return val
		}
	}

	return ""
}
