package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/object-measure-mcp/internal/config"
	"github.com/ironsheep/object-measure-mcp/internal/detection"
	"github.com/ironsheep/object-measure-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("object-measure-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Detector:   %s\n", detection.Backend)
			return
		case "--help", "-h", "help":
			fmt.Println("object-measure-mcp - MCP server that measures objects in photographs")
			fmt.Println()
			fmt.Println("Usage: object-measure-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=/path/to/config.json    Override detection and matching settings\n", config.EnvConfigPath)
			fmt.Println("  MEASURE_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("MEASURE_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Object Measure MCP Server v%s (built %s, commit %s, detector %s)",
			Version, BuildTime, GitCommit, detection.Backend)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if debug {
		log.Printf("Measurement config: %+v", cfg)
	}

	srv, err := server.NewWithConfig(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	srv.SetDebug(debug)

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
