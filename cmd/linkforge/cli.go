package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	linksdomain "github.com/linkforge-app/linkforge-backend/internal/links/domain"
	linksservice "github.com/linkforge-app/linkforge-backend/internal/links/service"
	projects "github.com/linkforge-app/linkforge-backend/internal/projects/domain"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "linkforge",
		Usage:   "Compose tracking URLs offline",
		Version: Version,
		Commands: []*cli.Command{
			composeCmd(),
			paramsCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func composeCmd() *cli.Command {
	return &cli.Command{
		Name:  "compose",
		Usage: "Merge tracking parameters into a base URL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Required: true, Usage: "Base URL"},
			&cli.StringFlag{Name: "source", Required: true, Usage: "utm_source value"},
			&cli.StringFlag{Name: "medium", Required: true, Usage: "utm_medium value"},
			&cli.StringFlag{Name: "campaign", Required: true, Usage: "utm_campaign value"},
			&cli.StringFlag{Name: "term", Usage: "utm_term value"},
			&cli.StringFlag{Name: "content", Usage: "utm_content value"},
			&cli.StringSliceFlag{Name: "param", Aliases: []string{"p"}, Usage: "Extra key=value parameter (repeatable)"},
			&cli.StringFlag{Name: "domain", Aliases: []string{"d"}, Usage: "Custom domain for a mock short link"},
		},
		Action: func(c *cli.Context) error {
			p, err := projectFromFlags(c)
			if err != nil {
				return err
			}

			longURL, err := linksservice.Merge(c.String("url"), p, nil)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, longURL)

			if domain := c.String("domain"); domain != "" {
				fmt.Fprintln(c.App.Writer, linksservice.MockShorten(longURL, domain))
				fmt.Fprintln(c.App.ErrWriter, "note: "+linksservice.MockNotice)
			}

			return nil
		},
	}
}

func paramsCmd() *cli.Command {
	return &cli.Command{
		Name:  "params",
		Usage: "Show the parameter rows a project expands to",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Usage: "utm_source value"},
			&cli.StringFlag{Name: "medium", Usage: "utm_medium value"},
			&cli.StringFlag{Name: "campaign", Usage: "utm_campaign value"},
			&cli.StringFlag{Name: "term", Usage: "utm_term value"},
			&cli.StringFlag{Name: "content", Usage: "utm_content value"},
			&cli.StringSliceFlag{Name: "param", Aliases: []string{"p"}, Usage: "Extra key=value parameter (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			p, err := projectFromFlags(c)
			if err != nil {
				return err
			}

			for _, e := range linksdomain.SessionParams(p) {
				tag := "custom"
				if e.IsDefault() {
					tag = "default"
				}
				fmt.Fprintf(c.App.Writer, "%-8s %s=%s\n", tag, e.Key(), e.Value())
			}

			return nil
		},
	}
}

func projectFromFlags(c *cli.Context) (projects.Project, error) {
	p := projects.Project{
		UTMSource:   c.String("source"),
		UTMMedium:   c.String("medium"),
		UTMCampaign: c.String("campaign"),
		UTMTerm:     c.String("term"),
		UTMContent:  c.String("content"),
	}

	for _, raw := range c.StringSlice("param") {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return projects.Project{}, fmt.Errorf("invalid --param %q, expected key=value", raw)
		}
		p.CustomParams = append(p.CustomParams, projects.Param{Key: key, Value: value})
	}

	return p, nil
}
