package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/hirehub/internal/config"
	"github.com/mrlokans/hirehub/internal/geocoding"
)

// GeocodeCommand resolves a coordinate pair through LocationIQ and prints the
// upstream document.
type GeocodeCommand struct {
	Latitude  string
	Longitude string
	APIKey    string
	BaseURL   string

	out io.Writer
}

func NewGeocodeCommand() *GeocodeCommand {
	return &GeocodeCommand{out: os.Stdout}
}

func (cmd *GeocodeCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()

	fs := flag.NewFlagSet("geocode", flag.ContinueOnError)

	fs.StringVar(&cmd.Latitude, "lat", "", "Latitude (required)")
	fs.StringVar(&cmd.Longitude, "lon", "", "Longitude (required)")
	fs.StringVar(&cmd.APIKey, "key", cfg.Geocoding.APIKey, "LocationIQ API key (defaults to LOCATIONIQ_API_KEY)")
	fs.StringVar(&cmd.BaseURL, "url", cfg.Geocoding.BaseURL, "LocationIQ base URL")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s geocode [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Resolve coordinates into an address through LocationIQ.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s geocode -lat 18.5204 -lon 73.8567\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Latitude == "" || cmd.Longitude == "" {
		fs.Usage()
		return fmt.Errorf("latitude and longitude are required")
	}
	if cmd.APIKey == "" {
		return fmt.Errorf("API key is required (set LOCATIONIQ_API_KEY or pass -key)")
	}

	return nil
}

func (cmd *GeocodeCommand) Run() error {
	client := geocoding.NewClient(config.Geocoding{
		APIKey:  cmd.APIKey,
		BaseURL: cmd.BaseURL,
	})

	doc, err := client.Reverse(context.Background(), cmd.Latitude, cmd.Longitude)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(doc)
	}
	pretty.WriteByte('\n')

	_, err = cmd.out.Write(pretty.Bytes())
	return err
}
