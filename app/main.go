package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/feedsift/feedsift/app/cfg"
	"github.com/feedsift/feedsift/app/document"
	"github.com/feedsift/feedsift/app/parser"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	data, err := readInput(appCfg.Input)
	if err != nil {
		slog.Error("Failed to read input", "error", err)
		os.Exit(1)
	}

	opts, err := cfg.LoadOptions(appCfg.OptionsFile)
	if err != nil {
		slog.Error("Failed to load options", "error", err)
		os.Exit(1)
	}

	doc := document.FromBytes(data, appCfg.URL, opts)

	switch appCfg.Mode {
	case "detect":
		fmt.Println(parser.DetectKind(doc.Body()))
	case "preparse":
		summary, err := parser.Preparse(doc)
		if err != nil {
			slog.Error("Preparse failed", "url", appCfg.URL, "error", err)
			os.Exit(1)
		}
		printJSON(summary)
	default:
		parsed, err := parser.Parse(doc)
		if err != nil {
			slog.Error("Parse failed", "url", appCfg.URL, "error", err)
			os.Exit(1)
		}
		slog.Debug("Parsed feed", "title", parsed.Title, "items", len(parsed.Items))
		printJSON(parsed)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Error("Failed to encode output", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
