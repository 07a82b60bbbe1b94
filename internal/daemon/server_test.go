package daemon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Logging: config.LoggingConfig{Level: "info", Format: "console"},
		Server:  config.ServerConfig{Addr: "127.0.0.1:0", Transport: "connect"},
		Project: config.ProjectConfig{Dir: t.TempDir(), CoverageReport: "target/site/jacoco/jacoco.xml"},
		Maven:   config.MavenConfig{Command: "mvn", TimeoutSeconds: 600},
		Git:     config.GitConfig{Command: "git", PRCommand: "gh"},
		Tools:   config.ToolsConfig{AllowExec: true, AllowGit: true, ExecTimeoutSeconds: 120},
	}
}

func TestNewServerWiresTimeouts(t *testing.T) {
	s, err := NewServer(testConfig(t), zap.NewNop())
	require.NoError(t, err)

	maven := s.tools.Maven
	require.Equal(t, 120*time.Second, maven.Terminal.Timeout,
		"terminal timeout should come from tools.exec_timeout_seconds")
	require.Equal(t, 600*time.Second, maven.Timeout,
		"maven timeout should come from maven.timeout_seconds")
}

func TestNewServerWiresPermissions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tools.AllowExec = false
	cfg.Tools.AllowGit = false
	cfg.Git.AllowPush = false

	s, err := NewServer(cfg, zap.NewNop())
	require.NoError(t, err)

	require.False(t, s.tools.Maven.Terminal.AllowExecution)
	require.False(t, s.tools.Git.AllowExec)
	require.False(t, s.tools.Git.AllowPush)
}
