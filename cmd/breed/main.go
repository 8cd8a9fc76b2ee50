package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/szzz666/PalEasyBreeding/internal/app"
	"github.com/szzz666/PalEasyBreeding/internal/config"
	"github.com/szzz666/PalEasyBreeding/internal/mcp/tools"
)

// breed answers one query against the configured dataset and prints Markdown.
//
//	breed -resolve Penking,Bushi
//	breed -reverse Anubis -exclude Penking
//	breed -partial Katress -target "Katress Ignis" -steps 2
//	breed -search lux
func main() {
	var (
		resolve   = flag.String("resolve", "", "breed two parents: NAME,NAME")
		sex1      = flag.String("sex1", "", "sex of the first parent (male|female)")
		sex2      = flag.String("sex2", "", "sex of the second parent (male|female)")
		reverse   = flag.String("reverse", "", "list parent pairs producing NAME")
		partial   = flag.String("partial", "", "known parent NAME for a partial search")
		target    = flag.String("target", "", "target NAME for -partial")
		second    = flag.Bool("second", false, "the known parent is the second parent")
		steps     = flag.Int("steps", 1, "generations for -partial (1 or 2)")
		search    = flag.String("search", "", "find pals by name or catalog number")
		exclude   = flag.String("exclude", "", "comma-separated pals results must not contain")
		sel       = flag.String("select", "", "comma-separated pals results must contain one of")
		limit     = flag.Int("limit", 50, "maximum results")
		verbosity = flag.String("verbosity", "standard", "summary|standard|full")
	)
	flag.Parse()

	_ = godotenv.Load(".env") // ignore error if .env missing

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx := context.Background()
	svc, err := app.LoadService(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		os.Exit(1)
	}

	var out string
	switch {
	case *resolve != "":
		parents := splitList(*resolve)
		if len(parents) != 2 {
			fmt.Fprintln(os.Stderr, "-resolve takes exactly two names")
			os.Exit(2)
		}
		out, err = tools.NewResolveBreedingHandler(svc, logger).Handle(ctx, tools.ResolveBreedingParams{
			Parent1: parents[0], Parent2: parents[1], Parent1Sex: *sex1, Parent2Sex: *sex2,
		})
	case *reverse != "":
		out, err = tools.NewReverseBreedingHandler(svc, nil, logger).Handle(ctx, tools.ReverseBreedingParams{
			Target: *reverse, Exclude: splitList(*exclude), Select: splitList(*sel),
			Limit: *limit, Verbosity: *verbosity, MaxResponseTokens: 1 << 20,
		})
	case *partial != "":
		knownFirst := !*second
		out, err = tools.NewPartialBreedingHandler(svc, nil, logger).Handle(ctx, tools.PartialBreedingParams{
			Known: *partial, Target: *target, KnownIsParent1: &knownFirst, Steps: *steps,
			Exclude: splitList(*exclude), Select: splitList(*sel),
			Limit: *limit, Verbosity: *verbosity, MaxResponseTokens: 1 << 20,
		})
	case *search != "":
		out, err = tools.NewSearchPalsHandler(svc, logger).Handle(ctx, tools.SearchPalsParams{
			Query: *search, Limit: *limit, Verbosity: *verbosity, MaxResponseTokens: 1 << 20,
		})
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(out)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
