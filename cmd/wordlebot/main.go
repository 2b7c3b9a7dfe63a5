package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/app"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/wordle"
	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordleexport "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/export"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/puzzledate"
	"github.com/Black-And-White-Club/wordle-bot/app/observability"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "wordlebot",
		Usage: "record Wordle results shared in chat and report leaderboards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"WORDLE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "process",
				Usage:     "handle one chat message and print the framed reply",
				ArgsUsage: "<sender> <base64-message>",
				Action:    processCommand,
			},
			{
				Name:   "serve",
				Usage:  "serve the HTTP API and the NATS message router",
				Action: serveCommand,
			},
			{
				Name:      "resolve",
				Usage:     "print the date of a puzzle",
				ArgsUsage: "<puzzle>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "anchor date for the walk, e.g. 2024-03-01 or \"last friday\""},
				},
				Action: resolveCommand,
			},
			{
				Name:      "daily",
				Usage:     "print the leaderboard of a puzzle",
				ArgsUsage: "<puzzle>",
				Action:    dailyCommand,
			},
			{
				Name:      "monthly",
				Usage:     "print the monthly leaderboard",
				ArgsUsage: "<month> <year>",
				Action:    monthlyCommand,
			},
			{
				Name:  "export",
				Usage: "write a month's standings and results to an xlsx workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "month", Required: true, Usage: "month name or number"},
					&cli.IntFlag{Name: "year", Required: true},
					&cli.StringFlag{Name: "out", Value: "wordle.xlsx", Usage: "output file"},
				},
				Action: exportCommand,
			},
		},
	}
}

// setup loads configuration and builds a logger on stderr, keeping stdout for replies.
func setup(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := observability.NewLogger(c.App.ErrWriter, cfg.Observability.LogFormat, cfg.Observability.LogLevel, cfg.Observability.Environment)
	return cfg, logger, nil
}

// withService runs fn against a service whose store lives for this invocation only.
func withService(c *cli.Context, fn func(ctx context.Context, svc wordleservice.Service) error) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	repo, err := wordle.OpenRepository(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, _, err := wordle.NewService(cfg, repo, logger, nil, observability.Tracer())
	if err != nil {
		return err
	}
	return fn(ctx, svc)
}

func processCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: wordlebot process <sender> <base64-message>", 2)
	}
	sender := c.Args().Get(0)
	text, err := base64.StdEncoding.DecodeString(c.Args().Get(1))
	if err != nil {
		return cli.Exit(fmt.Sprintf("message is not valid base64: %v", err), 2)
	}

	return withService(c, func(ctx context.Context, svc wordleservice.Service) error {
		reply, err := svc.HandleMessage(ctx, wordledomain.Inbound{Sender: sender, Text: string(text)})
		if err != nil {
			return err
		}
		if !reply.Empty() {
			fmt.Fprint(c.App.Writer, wordledomain.FrameReply(reply.Text))
		}
		return nil
	})
}

func serveCommand(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Start(ctx)
}

func resolveCommand(c *cli.Context) error {
	puzzle, err := strconv.Atoi(c.Args().First())
	if err != nil || puzzle < 0 {
		return cli.Exit("usage: wordlebot resolve <puzzle> [--from <date>]", 2)
	}
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	anchor, err := puzzledate.ParseAnchor(c.String("from"), time.Now())
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	date, err := wordle.NewResolver(cfg.Lookup, logger, nil).ResolveFrom(c.Context, puzzle, anchor)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, date.Format(wordledomain.DateLayout))
	return nil
}

func dailyCommand(c *cli.Context) error {
	puzzle, err := strconv.Atoi(c.Args().First())
	if err != nil || puzzle < 0 {
		return cli.Exit("usage: wordlebot daily <puzzle>", 2)
	}
	return withService(c, func(ctx context.Context, svc wordleservice.Service) error {
		board, err := svc.DailyBoard(ctx, puzzle)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, board.String())
		return nil
	})
}

func monthlyCommand(c *cli.Context) error {
	month, year, err := parsePeriod(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return cli.Exit("usage: wordlebot monthly <month> <year>: "+err.Error(), 2)
	}
	return withService(c, func(ctx context.Context, svc wordleservice.Service) error {
		report, err := svc.MonthlyReport(ctx, month, year)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, report)
		return nil
	})
}

func exportCommand(c *cli.Context) error {
	month, year, err := parsePeriod(c.String("month"), strconv.Itoa(c.Int("year")))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	return withService(c, func(ctx context.Context, svc wordleservice.Service) error {
		board, ok, err := svc.MonthlyBoard(ctx, month, year)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.App.ErrWriter, wordledomain.NoEntriesMessage(month, year))
			board = wordledomain.MonthlyBoard{Month: month, Year: year}
		}
		results, err := svc.MonthResults(ctx, month, year)
		if err != nil {
			return err
		}

		f, err := os.Create(c.String("out"))
		if err != nil {
			return err
		}
		if err := wordleexport.WriteMonth(f, board, results); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Wrote %d results for %s to %s\n", len(results), board.Period(), c.String("out"))
		return nil
	})
}

// parsePeriod accepts a month name (any case) or number and a four-digit year.
func parsePeriod(monthArg, yearArg string) (time.Month, int, error) {
	month, ok := wordledomain.ParseMonthName(monthArg)
	if !ok {
		n, err := strconv.Atoi(monthArg)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, fmt.Errorf("invalid month %q", monthArg)
		}
		month = time.Month(n)
	}
	year, err := strconv.Atoi(yearArg)
	if err != nil || year < 1 {
		return 0, 0, errors.New("invalid year " + strconv.Quote(yearArg))
	}
	return month, year, nil
}
