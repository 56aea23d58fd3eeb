package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/rodrigopv/vercheck/internal/fetch"
	"github.com/rodrigopv/vercheck/internal/mcpserver"
	"github.com/rodrigopv/vercheck/internal/resolver"
	"github.com/rodrigopv/vercheck/internal/store"
)

// Build information, initialized to defaults and potentially overridden by ldflags.
var (
	version = "development" // Git tag or version number
	commit  = "n/a"         // Git commit hash
	date    = "n/a"         // Build date
)

func printBanner() {
	lineColor := color.New(color.FgYellow)
	nameColor := color.New(color.FgWhite, color.Bold)
	urlColor := color.New(color.FgCyan)
	metaColor := color.New(color.FgWhite)
	width := 64 // Width of the content area inside the box
	border := "+" + strings.Repeat("-", width) + "+"
	nameText := "vercheck"
	urlText := "github.com/rodrigopv/vercheck"

	namePaddingTotal := width - len(nameText)
	urlPaddingTotal := width - len(urlText)

	namePaddingLeft := strings.Repeat(" ", namePaddingTotal/2)
	namePaddingRight := strings.Repeat(" ", width-len(nameText)-(namePaddingTotal/2))

	urlPaddingLeft := strings.Repeat(" ", urlPaddingTotal/2)
	urlPaddingRight := strings.Repeat(" ", width-len(urlText)-(urlPaddingTotal/2))

	lineColor.Println(border)
	lineColor.Print("|")
	fmt.Print(namePaddingLeft)
	nameColor.Print(nameText)
	fmt.Print(namePaddingRight)
	lineColor.Println("|")

	lineColor.Print("|")
	fmt.Print(urlPaddingLeft)
	urlColor.Print(urlText)
	fmt.Print(urlPaddingRight)
	lineColor.Println("|")

	lineColor.Println(border)

	buildInfo := fmt.Sprintf("Version: %s | Commit: %s | Date: %s", version, commit, date)
	fmt.Printf("%s\n\n", metaColor.Sprint(buildInfo))
}

func main() {
	printBanner()

	app := &cli.App{
		Name:      "vercheck",
		Usage:     "Resolve the currently published version of a mobile app from its store.",
		UsageText: "vercheck [command options] <android|ios>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "package",
				Aliases: []string{"p"},
				Usage:   "Package / bundle `IDENTIFIER` of the installed build",
			},
			&cli.StringFlag{
				Name:  "local-version",
				Usage: "Version string of the installed build (echoed into the record)",
			},
			&cli.StringFlag{
				Name:  "play-id",
				Usage: "Explicit Play Store application id (defaults to --package)",
			},
			&cli.StringFlag{
				Name:  "apple-id",
				Usage: "Explicit App Store numeric id (takes precedence over bundle id)",
			},
			&cli.StringFlag{
				Name:  "bundle-id",
				Usage: "Explicit App Store bundle id (defaults to --package)",
			},
			&cli.StringFlag{
				Name:    "country",
				Aliases: []string{"c"},
				Usage:   "App Store lookup country code (defaults to us)",
			},
			&cli.StringFlag{
				Name:    "manufacturer",
				Aliases: []string{"m"},
				Usage:   "Device manufacturer signal for Android OEM store routing",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "", // Default is stdout
				Usage:   "Write output to `FILE`",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text", // Default format
				Usage:   "Output format (`text` or `json`)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "mcp",
				Usage: "Serve store version resolution as an MCP tool over SSE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Value: "127.0.0.1",
						Usage: "Host to bind the MCP server to",
					},
					&cli.IntFlag{
						Name:  "port",
						Value: 8721,
						Usage: "Port to bind the MCP server to",
					},
				},
				Action: func(c *cli.Context) error {
					srv := mcpserver.NewMCPServer(c.String("host"), c.Int("port"))
					if err := srv.Start(); err != nil {
						return cli.Exit(fmt.Sprintf("MCP server failed: %v", err), 1)
					}
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				cli.ShowAppHelpAndExit(c, 1) // Show help if platform is missing
			}
			platform := strings.ToLower(c.Args().Get(0))
			outputFile := c.String("output")
			outputFormat := c.String("format")

			if outputFormat != "text" && outputFormat != "json" {
				return cli.Exit(fmt.Sprintf("Error: Invalid output format '%s'. Use 'text' or 'json'.", outputFormat), 1)
			}

			req := store.Request{
				Local: store.PackageInfo{
					PackageName: c.String("package"),
					Version:     c.String("local-version"),
				},
				PlayStoreID: c.String("play-id"),
				AppleID:     c.String("apple-id"),
				BundleID:    c.String("bundle-id"),
				Country:     c.String("country"),
			}

			var classifier resolver.DeviceClassifier
			if manufacturer := c.String("manufacturer"); manufacturer != "" {
				classifier = resolver.StaticClassifier(manufacturer)
			}

			log.Printf("Resolving %s store version for package %q", platform, req.Local.PackageName)

			fetcher := fetch.NewHTTPFetcher()
			rsv := resolver.New(fetcher, classifier)

			record, err := rsv.Resolve(store.Platform(platform), req)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error resolving store version: %v", err), 1)
			}

			if outputFile != "" {
				if err := writeRecord(record, outputFile, outputFormat); err != nil {
					return cli.Exit(fmt.Sprintf("Error writing output file: %v", err), 1)
				}
			} else {
				if err := printRecord(record, outputFormat); err != nil {
					return cli.Exit(fmt.Sprintf("Error printing results: %v", err), 1)
				}
			}

			return nil
		},
	}

	// Customize Help Printer
	cli.AppHelpTemplate = fmt.Sprintf(`%s
%s`, cli.AppHelpTemplate, `EXAMPLE:
   vercheck -p com.example.app android
   vercheck -p com.example.app -m xiaomi android
   vercheck --apple-id 1234567890 -f json ios
   vercheck mcp --port 9000
`)

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err) // Log fatal errors from cli itself
	}
}
