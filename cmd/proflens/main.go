// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/proflens"
	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/index"
	"github.com/poiesic/proflens/index/badger"
	"github.com/poiesic/proflens/index/pinecone"
	"github.com/poiesic/proflens/ingest"
	"github.com/poiesic/proflens/server"
)

func main() {
	indexFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "openai-api-key",
			Usage:   "OpenAI API key",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "openai-host",
			Usage: "Base URL of an OpenAI-compatible API (empty for hosted OpenAI)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Generation model name",
			Value: "gpt-4o-mini",
		},
		&cli.StringFlag{
			Name:    "pinecone-api-key",
			Usage:   "Pinecone API key",
			EnvVars: []string{"PINECONE_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "pinecone-index",
			Usage:   "Pinecone index name",
			Value:   "rag",
			EnvVars: []string{"PINECONE_INDEX"},
		},
		&cli.StringFlag{
			Name:    "namespace",
			Usage:   "Pinecone namespace holding the review dataset",
			Value:   "rateProfData",
			EnvVars: []string{"PINECONE_NAMESPACE"},
		},
		&cli.StringFlag{
			Name:  "local-index",
			Usage: "Path to a local BadgerDB index directory (used instead of Pinecone)",
		},
		&cli.IntFlag{
			Name:  "dimensions",
			Usage: "Embedding vector dimension (local index only)",
			Value: 1536,
		},
	}

	app := &cli.App{
		Name:  "proflens",
		Usage: "RAG assistant over instructor reviews",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address",
						Value: ":8080",
					},
				}, indexFlags...),
			},
			{
				Name:   "ingest",
				Usage:  "Bulk-ingest profiles from a JSON file",
				Action: ingestCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON array of profiles",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent ingestion workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per profile",
						Value: ingest.DefaultMaxAttempts,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				}, indexFlags...),
			},
			{
				Name:      "ask",
				Usage:     "Ask a one-shot question and stream the answer to stdout",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags:     indexFlags,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openIndex opens the vector index the flags select: a local BadgerDB
// directory when --local-index is set, the hosted Pinecone index
// otherwise. Missing credentials are a startup error, not a per-request
// surprise.
func openIndex(ctx context.Context, c *cli.Context) (index.Provider, error) {
	if path := c.String("local-index"); path != "" {
		return badger.Open(path, c.Int("dimensions"))
	}

	if c.String("pinecone-api-key") == "" {
		return nil, fmt.Errorf("pinecone-api-key is required (or use --local-index)")
	}

	return pinecone.New(ctx, pinecone.Config{
		APIKey:    c.String("pinecone-api-key"),
		Index:     c.String("pinecone-index"),
		Namespace: c.String("namespace"),
	})
}

func newPipeline(ctx context.Context, c *cli.Context) (*proflens.Pipeline, error) {
	aiConfig := ai.NewConfig(
		ai.WithAPIKey(c.String("openai-api-key")),
		ai.WithHost(c.String("openai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithEmbeddingDimensions(c.Int("dimensions")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}

	idx, err := openIndex(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector index: %w", err)
	}

	pipeline, err := proflens.NewPipeline(idx, proflens.WithAIConfig(aiConfig))
	if err != nil {
		idx.Close()
		return nil, err
	}
	return pipeline, nil
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	pipeline, err := newPipeline(ctx, c)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	srv, err := server.New(pipeline.Ingestor(), pipeline.Assistant())
	if err != nil {
		return err
	}

	addr := c.String("listen")
	slog.Info("starting server", "addr", addr)
	return http.ListenAndServe(addr, srv)
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read profiles file: %w", err)
	}

	var raw []struct {
		Name    string   `json:"name"`
		Rating  string   `json:"rating"`
		Tags    []string `json:"tags"`
		Reviews []string `json:"reviews"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse profiles file: %w", err)
	}

	profiles := make([]*core.ProfileRecord, len(raw))
	for i, r := range raw {
		profiles[i] = core.NewProfileRecord(r.Name, r.Rating, r.Tags, r.Reviews)
	}

	pipeline, err := newPipeline(ctx, c)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	result, err := pipeline.Ingestor().IngestAll(ctx, profiles,
		ingest.WithPoolSize(c.Int("workers")),
		ingest.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Ingested %d of %d profiles\n", result.Ingested, len(profiles))
	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "  failed %q: %v\n", failure.Id, failure.Err)
	}
	if len(result.Failures) > 0 {
		return fmt.Errorf("%d profiles failed", len(result.Failures))
	}
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("usage: proflens ask <question>")
	}

	pipeline, err := newPipeline(ctx, c)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	stream, err := pipeline.Assistant().Ask(ctx, []core.Message{
		{Text: question, Sender: core.SenderUser},
	})
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Print(fragment)
	}
}
