package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/newagesw/sales-bi/backend-go/internal/config"
	"github.com/newagesw/sales-bi/backend-go/internal/ingest"
	"github.com/newagesw/sales-bi/backend-go/internal/repository/postgres"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "ingest",
		Usage: "Load and validate sales dataset files outside the server",
		Commands: []*cli.Command{
			{
				Name:  "load",
				Usage: "Parse a dataset file, print normalized records, optionally persist them",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to a csv, xlsx or json dataset file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Write normalized records as JSON to this path instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "persist",
						Usage: "Replace the dataset in postgres (uses DB_* environment settings)",
					},
				},
				Action: runLoad,
			},
			{
				Name:  "template",
				Usage: "Write an empty upload template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Template format: xlsx or json",
						Value: "xlsx",
					},
					&cli.StringFlag{
						Name:     "out",
						Usage:    "Output path",
						Required: true,
					},
				},
				Action: runTemplate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runLoad(c *cli.Context) error {
	path := c.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ingest.ParseFile(path, f)
	if err != nil {
		return err
	}
	log.Printf("loaded %d records from %s", len(records), path)

	if c.Bool("persist") {
		cfg := config.Load()
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		repo := postgres.NewDatasetRepository(db)
		if err := repo.EnsureSchema(c.Context); err != nil {
			return err
		}
		if err := repo.Replace(c.Context, records); err != nil {
			return err
		}
		log.Printf("persisted %d records", len(records))
		return nil
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if out := c.String("out"); out != "" {
		return os.WriteFile(out, payload, 0644)
	}
	fmt.Println(string(payload))
	return nil
}

func runTemplate(c *cli.Context) error {
	out := c.String("out")

	switch c.String("format") {
	case "xlsx":
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		return ingest.WriteXLSXTemplate(f)
	case "json":
		payload, err := ingest.JSONTemplate()
		if err != nil {
			return err
		}
		return os.WriteFile(out, payload, 0644)
	default:
		return fmt.Errorf("unsupported template format %q: use xlsx or json", c.String("format"))
	}
}
