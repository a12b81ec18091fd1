package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"clouddirmcp/internal/audit"
	"clouddirmcp/internal/config"
	logpkg "clouddirmcp/internal/log"
	cdmcp "clouddirmcp/internal/mcp"
	"clouddirmcp/internal/policy"
	"clouddirmcp/internal/redact"
)

// ConfigEnv names the environment variable consulted when no config path is
// given.
const ConfigEnv = "CLOUDDIRMCP_CONFIG"

type Options struct {
	ConfigPath         string
	Toolsets           []string
	ReadOnly           bool
	DisableDestructive bool
	LogLevel           string
	Region             string
	Profile            string
	Version            string
	Stderr             io.Writer
	// Transport defaults to stdio.
	Transport sdkmcp.Transport
}

// Run serves the enabled tools over MCP until ctx is done or the client
// disconnects. SIGHUP reloads the configuration and re-registers tools.
func Run(ctx context.Context, opts Options) error {
	errOut := stderr(opts)
	configPath := resolveConfigPath(opts.ConfigPath)
	overrides := overridesFrom(opts)

	cfg, err := loadConfig(configPath, overrides)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	logpkg.Init(errOut, cfg.LogLevel)

	toolCtx, reg, err := buildRuntime(cfg, errOut)
	if err != nil {
		return fmt.Errorf("init failed: %w", err)
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "clouddirmcp", Version: opts.Version}, nil)
	toolNames, err := cdmcp.RegisterSDKTools(server, reg, toolCtx)
	if err != nil {
		return fmt.Errorf("tool registration failed: %w", err)
	}
	log.WithFields(log.Fields{
		"tools":    len(toolNames),
		"toolsets": strings.Join(cfg.Toolsets, ","),
	}).Info("serving tools")

	reloadCh := make(chan os.Signal, 1)
	stopReload := notifyReload(reloadCh)
	defer stopReload()
	go func() {
		for range reloadCh {
			cfg, err := loadConfig(configPath, overrides)
			if err != nil {
				log.WithError(err).Error("config reload failed")
				continue
			}
			logpkg.SetLevel(cfg.LogLevel)
			toolCtx, reg, err := buildRuntime(cfg, errOut)
			if err != nil {
				log.WithError(err).Error("reload init failed")
				continue
			}
			if len(toolNames) > 0 {
				server.RemoveTools(toolNames...)
			}
			toolNames, err = cdmcp.RegisterSDKTools(server, reg, toolCtx)
			if err != nil {
				log.WithError(err).Error("tool registration failed")
				continue
			}
			log.WithField("tools", len(toolNames)).Info("configuration reloaded")
		}
	}()

	transport := opts.Transport
	if transport == nil {
		transport = &sdkmcp.StdioTransport{}
	}
	if err := server.Run(ctx, transport); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Call runs a single tool outside an MCP session and returns its result.
func Call(ctx context.Context, opts Options, toolName string, args map[string]any) (cdmcp.ToolResult, error) {
	errOut := stderr(opts)
	cfg, err := loadConfig(resolveConfigPath(opts.ConfigPath), overridesFrom(opts))
	if err != nil {
		return cdmcp.ToolResult{}, fmt.Errorf("config load failed: %w", err)
	}
	logpkg.Init(errOut, cfg.LogLevel)
	toolCtx, _, err := buildRuntime(cfg, errOut)
	if err != nil {
		return cdmcp.ToolResult{}, fmt.Errorf("init failed: %w", err)
	}
	return toolCtx.CallToolWithKey(ctx, "", toolName, args)
}

// Tools lists the tools enabled by the configuration.
func Tools(opts Options) ([]cdmcp.ToolInfo, error) {
	errOut := stderr(opts)
	cfg, err := loadConfig(resolveConfigPath(opts.ConfigPath), overridesFrom(opts))
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	logpkg.Init(errOut, cfg.LogLevel)
	_, reg, err := buildRuntime(cfg, errOut)
	if err != nil {
		return nil, fmt.Errorf("init failed: %w", err)
	}
	return reg.List(), nil
}

func stderr(opts Options) io.Writer {
	if opts.Stderr == nil {
		return os.Stderr
	}
	return opts.Stderr
}

func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	return os.Getenv(ConfigEnv)
}

func overridesFrom(opts Options) config.Overrides {
	overrides := config.Overrides{}
	if len(opts.Toolsets) > 0 {
		overrides.Toolsets = &opts.Toolsets
	}
	if opts.ReadOnly {
		overrides.ReadOnly = &opts.ReadOnly
	}
	if opts.DisableDestructive {
		overrides.DisableDestructive = &opts.DisableDestructive
	}
	if opts.LogLevel != "" {
		overrides.LogLevel = &opts.LogLevel
	}
	if opts.Region != "" {
		overrides.Region = &opts.Region
	}
	if opts.Profile != "" {
		overrides.Profile = &opts.Profile
	}
	return overrides
}

func loadConfig(path string, overrides config.Overrides) (config.Config, error) {
	return config.Load(path, config.DropInDir(path), overrides)
}

func buildRuntime(cfg config.Config, errOut io.Writer) (cdmcp.ToolContext, *cdmcp.ToolRegistry, error) {
	authorizer := policy.NewAuthorizer(cfg.Policy.AllowedTools...)
	redactor := redact.New()
	var auditLogger *audit.Logger
	if !cfg.Audit.Disabled {
		auditLogger = audit.NewLogger(errOut)
	}
	serviceRegistry := cdmcp.NewServiceRegistry()
	reg := cdmcp.NewRegistry(&cfg)

	toolCtx := cdmcp.ToolContext{
		Config:   &cfg,
		Policy:   authorizer,
		Redactor: redactor,
		Audit:    auditLogger,
		Services: serviceRegistry,
		Registry: reg,
	}
	toolCtx.Invoker = cdmcp.NewToolInvoker(reg, toolCtx)
	toolsetCtx := cdmcp.ToolsetContext(toolCtx)

	toolsets, err := cdmcp.NewToolsets(cfg.Toolsets)
	if err != nil {
		return cdmcp.ToolContext{}, nil, err
	}
	for _, toolset := range toolsets {
		id := toolset.ID()
		if err := toolset.Init(toolsetCtx); err != nil {
			return cdmcp.ToolContext{}, nil, fmt.Errorf("init toolset %s: %w", id, err)
		}
		if err := toolset.Register(reg); err != nil {
			return cdmcp.ToolContext{}, nil, fmt.Errorf("register toolset %s: %w", id, err)
		}
		log.WithFields(log.Fields{"toolset": id, "version": toolset.Version()}).Debug("toolset enabled")
	}
	if filtered := reg.Filtered(); len(filtered) > 0 {
		log.WithField("tools", strings.Join(filtered, ",")).Debug("tools hidden by safety settings")
	}

	return toolCtx, reg, nil
}
