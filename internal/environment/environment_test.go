package environment

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSitLibDir(t *testing.T) {
	_ = os.Unsetenv(fetchDefaultBaseDirEnv)
	assert.Equal(t, ".sitlib", SitLibDir())

	t.Setenv(fetchDefaultBaseDirEnv, "/tmp/mappings")
	assert.Equal(t, "/tmp/mappings", SitLibDir())
}

func TestGraphUrl(t *testing.T) {
	_ = os.Unsetenv(graphUrlEnv)
	_ = os.Unsetenv("ARM_ENVIRONMENT")
	_ = os.Unsetenv("AZURE_ENVIRONMENT")
	assert.Equal(t, "https://graph.microsoft.com", GraphUrl())

	t.Setenv("AZURE_ENVIRONMENT", "usgovernment")
	assert.Equal(t, "https://graph.microsoft.us", GraphUrl())

	t.Setenv("ARM_ENVIRONMENT", "china")
	assert.Equal(t, "https://microsoftgraph.chinacloudapi.cn", GraphUrl())

	t.Setenv(graphUrlEnv, "http://localhost:8080")
	assert.Equal(t, "http://localhost:8080", GraphUrl())
}

func TestTenantCommand(t *testing.T) {
	_ = os.Unsetenv(tenantCommandEnv)
	assert.Contains(t, TenantCommand(), "Get-DlpSensitiveInformationType")

	t.Setenv(tenantCommandEnv, "pwsh -File ./list-sits.ps1")
	assert.Equal(t, "pwsh -File ./list-sits.ps1", TenantCommand())
}
