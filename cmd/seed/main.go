package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"abctrack/internal/config"
	"abctrack/internal/domain/models"
	"abctrack/internal/flow"
	"abctrack/internal/kv"
	"abctrack/internal/store"

	"github.com/joho/godotenv"
)

// Seeds a demo caregiver with two children and a week of logs, for local
// development against a real backend.
func main() {
	userID := flag.String("user", "dev-caregiver", "caregiver id to seed records for")
	days := flag.Int("days", 7, "how many past days of logs to generate")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Environment == "prod" {
		log.Fatalf("BLOCKED: refusing to seed the production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := kv.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	pgStore := kv.NewPostgresStore(pool, cfg.TablePrefix)
	if err := pgStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	recordStore := store.NewRecordStore(pgStore, logger)
	flows, err := flow.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load flows: %v", err)
	}

	names := []struct{ name, pronouns string }{
		{"mia", "she/her"},
		{"theo", "he/him"},
	}

	behaviors := []string{"Hitting", "Sharing", "Screaming", "Helping", "Throwing things"}

	for _, n := range names {
		id, _, err := recordStore.CreateChild(ctx, *userID, n.name, n.pronouns)
		if err != nil {
			log.Fatalf("Failed to create child %s: %v", n.name, err)
		}

		for d := 0; d < *days; d++ {
			behavior := behaviors[d%len(behaviors)]
			sentiment := flows.Classify(behavior)
			eventTime := time.Now().AddDate(0, 0, -d).Add(-2 * time.Hour)

			responses := map[string]models.Response{
				"behavior": {
					Question:  "What did they do?",
					Answers:   []models.Answer{{Answer: behavior}},
					Sentiment: sentiment,
				},
				"antecedent": {
					Question: "What happened right before?",
					Answers:  []models.Answer{{Answer: "Transition between activities"}},
				},
				"consequence": {
					Question: "What happened right after?",
					Answers:  []models.Answer{{Answer: "Comforted"}},
					Comment:  "Settled down quickly",
				},
			}

			if _, err := recordStore.AppendLog(ctx, *userID, id, sentiment, responses, eventTime); err != nil {
				log.Fatalf("Failed to append log: %v", err)
			}
		}

		logger.Info("seeded child", "id", id, "logs", *days)
	}

	if _, err := recordStore.EnsureSelection(ctx, *userID); err != nil {
		log.Fatalf("Failed to ensure selection: %v", err)
	}

	logger.Info("seed complete", "user_id", *userID)
}
