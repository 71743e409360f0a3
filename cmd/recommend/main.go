// Package main runs the recommendation pipeline once from the command line.
//
// Usage:
//
//	recommend [-user NAME] [-data-path DIR] [flags] <title query>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/listenupapp/bookrec/internal/catalog"
	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/recommend"
	"github.com/listenupapp/bookrec/internal/search"
	"github.com/listenupapp/bookrec/internal/sentiment"
	"github.com/listenupapp/bookrec/internal/service"
	"github.com/listenupapp/bookrec/internal/store"
)

func main() {
	username := flag.String("user", "", "Name recorded in the user input log")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: recommend [flags] <title query>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	query := strings.Join(flag.Args(), " ")

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recs := store.NewRecommendationStore(cfg.Data.RecommendationsPath(), log)
	svc := service.NewRecommendationService(
		cfg.Recommend,
		catalog.NewLoader(cfg.Data, log),
		sentiment.NewScorer(sentiment.NewVaderAnalyzer()),
		recommend.NewEngine(recommend.DefaultConfig(), recs, log),
		recs,
		store.NewUserInputLog(cfg.Data.UserInputsPath()),
		search.NewSuggester(log),
		log,
	)

	result, err := svc.Recommend(ctx, service.RecommendRequest{
		Username:  *username,
		Choice:    domain.ChoiceByBook,
		InputData: query,
	})
	if err != nil {
		log.Fatal("Recommendation failed", "error", err)
	}

	if result.CatalogStatus == domain.LoadStatusDegraded {
		fmt.Fprintln(os.Stderr, "warning: catalog unavailable, see log for details")
	}

	if len(result.Recommendations) == 0 {
		fmt.Printf("No books matched %q.\n", query)
		if len(result.Suggestions) > 0 {
			fmt.Println("Did you mean:")
			for _, s := range result.Suggestions {
				fmt.Printf("  %s\n", s)
			}
		}
		return
	}

	fmt.Print(store.TableHeader())
	for _, e := range result.Recommendations {
		fmt.Print(store.TableRow(e.Book))
	}
}
