package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"clouddirmcp/pkg/server"

	_ "clouddirmcp/toolsets/aws"
)

const version = "0.1.0"

var (
	runServer = server.Run
	callTool  = server.Call
	listTools = server.Tools
	exit      = os.Exit
)

var stdout io.Writer = os.Stdout

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		exit(1)
	}
}

func newApp() *cli.Command {
	app := &cli.Command{
		Name:    "clouddirmcp",
		Usage:   "Amazon Cloud Directory tools over MCP",
		Version: version,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config file path"},
			&cli.StringFlag{Name: "toolsets", Usage: "comma-separated toolsets to enable"},
			&cli.BoolFlag{Name: "read-only", Usage: "disable write operations"},
			&cli.BoolFlag{Name: "disable-destructive", Usage: "disable destructive operations"},
			&cli.StringFlag{Name: "log-level", Usage: "log level"},
			&cli.StringFlag{Name: "region", Usage: "default AWS region"},
			&cli.StringFlag{Name: "profile", Usage: "default AWS shared config profile"},
		},
		Action: serve,
	}
	app.Commands = []*cli.Command{
		{
			Name:   "serve",
			Usage:  "serve tools over stdio",
			Action: serve,
		},
		{
			Name:      "call",
			Usage:     "run one tool and print its result",
			ArgsUsage: "<tool> [key=value ...]",
			Action:    call,
		},
		{
			Name:   "tools",
			Usage:  "list enabled tools",
			Action: tools,
		},
	}
	return app
}

func serve(ctx context.Context, cmd *cli.Command) error {
	return runServer(ctx, optionsFrom(cmd))
}

func call(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("call: tool name is required")
	}
	toolArgs, err := parseKeyValues(args[1:])
	if err != nil {
		return err
	}
	result, err := callTool(ctx, optionsFrom(cmd), args[0], toolArgs)
	if err != nil {
		return err
	}
	return writeJSON(result.Data)
}

func tools(_ context.Context, cmd *cli.Command) error {
	list, err := listTools(optionsFrom(cmd))
	if err != nil {
		return err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	for _, tool := range list {
		fmt.Fprintf(stdout, "%-50s %-8s %-12s %s\n", tool.Name, tool.ToolsetID, tool.Safety, tool.Description)
	}
	return nil
}

func optionsFrom(cmd *cli.Command) server.Options {
	options := server.Options{
		ConfigPath: cmd.String("config"),
		Version:    version,
		Stderr:     os.Stderr,
	}
	if cmd.IsSet("toolsets") {
		options.Toolsets = parseCSV(cmd.String("toolsets"))
	}
	if cmd.IsSet("read-only") {
		options.ReadOnly = cmd.Bool("read-only")
	}
	if cmd.IsSet("disable-destructive") {
		options.DisableDestructive = cmd.Bool("disable-destructive")
	}
	if cmd.IsSet("log-level") {
		options.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("region") {
		options.Region = cmd.String("region")
	}
	if cmd.IsSet("profile") {
		options.Profile = cmd.String("profile")
	}
	return options
}

func writeJSON(data any) error {
	if data == nil {
		data = map[string]any{}
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(encoded))
	return err
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseKeyValues turns key=value pairs into tool arguments. Values are kept
// as strings.
func parseKeyValues(pairs []string) (map[string]any, error) {
	out := map[string]any{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
