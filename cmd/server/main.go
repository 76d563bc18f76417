package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"

	"github.com/luminal-ai/companion/pkg/ai"
	"github.com/luminal-ai/companion/pkg/config"
	"github.com/luminal-ai/companion/pkg/db"
	"github.com/luminal-ai/companion/pkg/engine"
	"github.com/luminal-ai/companion/pkg/events"
	"github.com/luminal-ai/companion/pkg/extract"
	"github.com/luminal-ai/companion/pkg/growth"
	"github.com/luminal-ai/companion/pkg/helpers"
	"github.com/luminal-ai/companion/pkg/importance"
	"github.com/luminal-ai/companion/pkg/intent"
	"github.com/luminal-ai/companion/pkg/lexicon"
	"github.com/luminal-ai/companion/pkg/logging"
	"github.com/luminal-ai/companion/pkg/retrospect"
	"github.com/luminal-ai/companion/pkg/scheduler"
	"github.com/luminal-ai/companion/pkg/style"
	"github.com/luminal-ai/companion/pkg/voice"
)

// inboundMessage is the payload accepted on the message subject.
type inboundMessage struct {
	UserID         string `json:"userId"`
	BotID          string `json:"botId"`
	Message        string `json:"message"`
	Mood           string `json:"mood"`
	IsFirstMention bool   `json:"isFirstMention"`
	UserInitiated  bool   `json:"userInitiated"`
}

func main() {
	conf, err := config.LoadConfig(false)
	if err != nil {
		panic(err)
	}

	logger := logging.New(conf.LogLevel)

	lex := lexicon.Default()
	if conf.LexiconPath != "" {
		lex, err = lexicon.Load(conf.LexiconPath)
		if err != nil {
			logger.Fatal("Loading lexicon failed", "path", conf.LexiconPath, "error", err)
		}
	}

	store, err := db.NewStore(conf.DBPath, logging.ForComponent(logger, "db"))
	if err != nil {
		logger.Fatal("Opening store failed", "error", err)
	}
	defer func() { _ = store.Close() }()

	bus := events.NewBus(logging.ForComponent(logger, "events"))
	completions := ai.NewOpenAIService(logging.ForComponent(logger, "ai"), conf.CompletionsAPIKey, conf.CompletionsAPIURL)

	extractor := extract.New(lex)
	growthService := growth.NewService(store, bus, lex, logging.ForComponent(logger, "growth"))
	styleAdapter := style.NewAdapter(store, lex, logging.ForComponent(logger, "style"))
	generator := retrospect.NewGenerator(completions, conf.CompletionsModel, conf.SummaryTimeout, lex, logging.ForComponent(logger, "retrospect"))

	eng := engine.New(engine.Options{
		Logger:      logging.ForComponent(logger, "engine"),
		Store:       store,
		Extractor:   extractor,
		Classifier:  intent.NewClassifier(lex, extractor),
		Scorer:      importance.NewScorer(lex),
		Growth:      growthService,
		Styles:      styleAdapter,
		Retrospect:  generator,
		Voices:      voice.NewSelector(),
		Bus:         bus,
		RecentLimit: conf.RecentMemoryLimit,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if conf.NatsURL != "" {
		nc, err := nats.Connect(conf.NatsURL)
		if err != nil {
			logger.Fatal("Connecting to NATS failed", "url", conf.NatsURL, "error", err)
		}
		defer nc.Close()

		bridgeEvents(bus, nc)

		_, err = nc.Subscribe(conf.MessageSubject, func(msg *nats.Msg) {
			handleMessage(ctx, eng, nc, logger, msg)
		})
		if err != nil {
			logger.Fatal("Subscribing to message subject failed", "error", err)
		}
		logger.Info("Listening for utterances", "subject", conf.MessageSubject)
	}

	sched := scheduler.New(logging.ForComponent(logger, "scheduler"))
	err = sched.Add(conf.RetrospectCron, "retrospective", func(jobCtx context.Context) {
		eng.RetrospectiveAll(jobCtx, "", "the past day")
	})
	if err != nil {
		logger.Fatal("Scheduling retrospective failed", "error", err)
	}
	sched.Start(ctx)

	logger.Info("Companion engine running")
	<-ctx.Done()
	logger.Info("Shutting down")
}

func handleMessage(ctx context.Context, eng *engine.Engine, nc *nats.Conn, logger *log.Logger, msg *nats.Msg) {
	var inbound inboundMessage
	if err := json.Unmarshal(msg.Data, &inbound); err != nil {
		logger.Error("Malformed inbound message", "error", err)
		return
	}
	if inbound.BotID == "" {
		inbound.BotID = inbound.UserID
	}

	result, err := eng.Process(ctx, engine.Request{
		UserID:  inbound.UserID,
		BotID:   inbound.BotID,
		Message: inbound.Message,
		Mood:    inbound.Mood,
		Flags: importance.Flags{
			IsFirstMention: inbound.IsFirstMention,
			UserInitiated:  inbound.UserInitiated,
		},
	})
	if err != nil {
		logger.Error("Processing utterance failed", "user_id", inbound.UserID, "error", err)
		return
	}

	if msg.Reply != "" {
		payload, err := json.Marshal(result)
		if err != nil {
			logger.Error("Encoding result failed", "error", err)
			return
		}
		if err := nc.Publish(msg.Reply, payload); err != nil {
			logger.Error("Replying with result failed", "error", err)
		}
	}
}

func bridgeEvents(bus *events.Bus, nc *nats.Conn) {
	forward := func(subject string) events.Handler {
		return func(_ context.Context, event events.Event) error {
			return helpers.NatsPublish(nc, subject, event)
		}
	}
	bus.Subscribe(events.MilestoneAchieved, forward("companion.growth.milestone"))
	bus.Subscribe(events.SummaryGenerated, forward("companion.summary.generated"))
}
