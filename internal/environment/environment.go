// Package environment contains the types and methods for fetching configuration from the local environment.
package environment

import "os"

const (
	fetchDefaultBaseDir    = ".sitlib"    // fetchDefaultBaseDir is the default base directory for fetching mapping bundles.
	fetchDefaultBaseDirEnv = "SITLIB_DIR" // fetchDefaultBaseDirEnv is the environment variable to override the default base directory.

	graphDefaultUrl = "https://graph.microsoft.com"             // graphDefaultUrl is the Microsoft Graph endpoint for the public cloud.
	graphUsGovUrl   = "https://graph.microsoft.us"              // graphUsGovUrl is the Microsoft Graph endpoint for the US government cloud.
	graphChinaUrl   = "https://microsoftgraph.chinacloudapi.cn" // graphChinaUrl is the Microsoft Graph endpoint for the China cloud.
	graphUrlEnv     = "SITLIB_GRAPH_URL"                        // graphUrlEnv is the environment variable to override the Graph endpoint.

	tenantCommandEnv = "SITLIB_TENANT_COMMAND" // tenantCommandEnv is the environment variable to override the tenant PowerShell command.
)

// tenantCommandDefault is the default Security & Compliance PowerShell pipeline used to
// list sensitive information types. It assumes an established Exchange Online session.
const tenantCommandDefault = `pwsh -NoProfile -NonInteractive -Command "Get-DlpSensitiveInformationType | Select-Object Id,Name,Publisher,Type | ConvertTo-Json -Depth 3"`

// SitLibDir contents of the `SITLIB_DIR` environment variable, or the default which is `.sitlib`.
func SitLibDir() string {
	dir := fetchDefaultBaseDir
	if d := os.Getenv(fetchDefaultBaseDirEnv); d != "" {
		dir = d
	}
	return dir
}

// GraphUrl contents of the `SITLIB_GRAPH_URL` environment variable, or the
// Microsoft Graph endpoint for the cloud named by `ARM_ENVIRONMENT` /
// `AZURE_ENVIRONMENT` (public, usgovernment, china). Defaults to the public cloud.
func GraphUrl() string {
	if u := os.Getenv(graphUrlEnv); u != "" {
		return u
	}

	env := os.Getenv("ARM_ENVIRONMENT")
	if env == "" {
		env = os.Getenv("AZURE_ENVIRONMENT")
	}

	switch env {
	case "usgovernment":
		return graphUsGovUrl
	case "china":
		return graphChinaUrl
	}

	return graphDefaultUrl
}

// TenantCommand contents of the `SITLIB_TENANT_COMMAND` environment variable, or the
// default Security & Compliance PowerShell pipeline.
func TenantCommand() string {
	cmd := tenantCommandDefault
	if c := os.Getenv(tenantCommandEnv); c != "" {
		cmd = c
	}
	return cmd
}
