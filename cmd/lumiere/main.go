package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kristoffermer/Lumiere"
	"github.com/kristoffermer/Lumiere/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("lumiere %s\n", version)
			return
		case "help", "-h", "--help":
			printUsage()
			return
		case "serve":
			// fall through to the server below
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	cfg := lumiere.SiteConfig{
		Name:             lumiere.EnvOr("SITE_NAME", "Lumière"),
		URL:              lumiere.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:      lumiere.EnvOr("SITE_DESCRIPTION", "Cinematic courses"),
		Author:           os.Getenv("SITE_AUTHOR"),
		Addr:             lumiere.EnvOr("ADDR", ":3000"),
		DatabasePath:     lumiere.EnvOr("DATABASE_PATH", "data/courses.db"),
		AllowedEmails:    splitList(os.Getenv("ALLOWED_EMAILS")),
		AdminPassword:    lumiere.MustEnv("ADMIN_PASSWORD"),
		SessionSecret:    lumiere.MustEnv("SESSION_SECRET"),
		CookieSecure:     os.Getenv("COOKIE_SECURE") == "true",
		AnalyticsEnabled: os.Getenv("ANALYTICS_ENABLED") == "true",
	}

	app := lumiere.New(cfg, views.Default())
	defer app.Close()

	if err := app.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage() {
	fmt.Println(`lumiere - A cinematic course platform built with Go, Echo, and templ

Usage:
  lumiere [command]

Commands:
  serve         Start the server (default)
  version       Print the lumiere version
  help          Show this help message

Configuration is read from the environment:
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, SITE_AUTHOR
  ADDR, DATABASE_PATH, COOKIE_SECURE, ANALYTICS_ENABLED
  ALLOWED_EMAILS   comma-separated creator allow-list
  ADMIN_PASSWORD   required, studio password
  SESSION_SECRET   required, session encryption secret`)
}
