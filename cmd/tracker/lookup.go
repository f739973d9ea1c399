package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rickgao/disclosure-data/internal/identifier"
	"github.com/rickgao/disclosure-data/internal/links"
	"github.com/rickgao/disclosure-data/internal/model"
	"github.com/rickgao/disclosure-data/internal/render"
)

func runLookup(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config file (default: environment only)")
	kindName := fs.String("kind", "", "dataset: politicians, insiders or holdings")
	id := fs.String("id", "", "politician name, ticker or CIK")
	period := fs.String("period", "", "13F period of report, YYYY-MM-DD (default: latest filed quarter)")
	pageSize := fs.Int("page-size", 0, "13F page size, at most 50")
	asJSON := fs.Bool("json", false, "print JSON")
	diagnostics := fs.Bool("diagnostics", false, "include normalization diagnostics")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	kind, err := model.ParseDatasetKind(*kindName)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *period != "" {
		cfg.Holdings.PeriodOfReport = *period
	}
	if *pageSize != 0 {
		cfg.Holdings.PageSize = *pageSize
	}
	if *diagnostics {
		cfg.Normalize.Diagnostics = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate flags: %w", err)
	}

	logger := newLogger(os.Stderr, cfg.Logging, *debug)
	ctx, cancel := signalContext(logger)
	defer cancel()

	d, err := newDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	res := d.service.Lookup(ctx, kind, *id)

	if *asJSON {
		if err := render.JSON(stdout, render.Lookup(res)); err != nil {
			return err
		}
	} else if err := render.Summary(stdout, res); err != nil {
		return err
	}

	if res.Failed() {
		return errReported
	}
	return nil
}

func runLinks(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("links", flag.ContinueOnError)
	kindName := fs.String("kind", "", "dataset: politicians, insiders or holdings")
	id := fs.String("id", "", "politician name, ticker or CIK")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	kind, err := model.ParseDatasetKind(*kindName)
	if err != nil {
		return err
	}

	resp := linksFor(kind, *id)
	if *asJSON {
		return render.JSON(stdout, resp)
	}

	if len(resp.Links) == 0 && len(resp.Resources) == 0 {
		fmt.Fprintf(stdout, "%q is not a valid %s\n", *id, kind.IdentifierKind())
		return errReported
	}
	for _, l := range resp.Links {
		fmt.Fprintf(stdout, "%-22s %s\n", l.Site, l.URL)
	}
	for _, f := range resp.PopularFilers {
		fmt.Fprintf(stdout, "%s  %s\n", f.CIK, f.Name)
	}
	for _, l := range resp.Resources {
		fmt.Fprintf(stdout, "%-22s %s\n", l.Site, l.URL)
	}
	return nil
}

// linksResponse is shared by the links command and the HTTP API.
type linksResponse struct {
	Dataset       string        `json:"dataset"`
	Identifier    string        `json:"identifier"`
	Links         []links.Link  `json:"links"`
	PopularFilers []links.Filer `json:"popular_filers,omitempty"`
	Resources     []links.Link  `json:"resources,omitempty"`
}

// linksFor returns deep links for raw. An empty identifier gets the general
// resources instead, plus example filers for holdings.
func linksFor(kind model.DatasetKind, raw string) linksResponse {
	id := identifier.Normalize(raw, kind.IdentifierKind())
	resp := linksResponse{
		Dataset:    kind.String(),
		Identifier: id.Normalized(),
		Links:      links.For(id),
	}
	if resp.Links == nil {
		resp.Links = []links.Link{}
	}
	if strings.TrimSpace(raw) == "" {
		resp.Resources = links.Resources()
		if kind == model.InstitutionalHoldings {
			resp.PopularFilers = links.PopularFilers()
		}
	}
	return resp
}
