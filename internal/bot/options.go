// Package bot provides the shopbot service application.
package bot

import (
	"fmt"

	"github.com/spf13/pflag"

	httpopts "github.com/kart-io/shopbot/pkg/options/http"
	logopts "github.com/kart-io/shopbot/pkg/options/logger"
	milvusopts "github.com/kart-io/shopbot/pkg/options/milvus"
	ollamaopts "github.com/kart-io/shopbot/pkg/options/ollama"
	sqliteopts "github.com/kart-io/shopbot/pkg/options/sqlite"
)

// Options contains all shopbot service options.
type Options struct {
	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// Log contains logger configuration.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// Milvus contains the FAQ knowledge base backend configuration.
	Milvus *milvusopts.Options `json:"milvus" mapstructure:"milvus"`

	// Ollama contains the model backend configuration.
	Ollama *ollamaopts.Options `json:"ollama" mapstructure:"ollama"`

	// SQLite contains the product catalog database configuration.
	SQLite *sqliteopts.Options `json:"sqlite" mapstructure:"sqlite"`

	// Bot contains bot-specific configuration.
	Bot *BotOptions `json:"bot" mapstructure:"bot"`
}

// BotOptions contains bot-specific configuration.
type BotOptions struct {
	// FAQCollection is the knowledge base collection name.
	FAQCollection string `json:"faq-collection" mapstructure:"faq-collection"`

	// FAQDataPath is the CSV file with question/answer pairs ingested at
	// startup. Empty skips ingestion.
	FAQDataPath string `json:"faq-data-path" mapstructure:"faq-data-path"`

	// TopK is how many FAQ entries to retrieve per query.
	TopK int `json:"top-k" mapstructure:"top-k"`

	// EmbeddingDim is the embedding vector dimension.
	EmbeddingDim int `json:"embedding-dim" mapstructure:"embedding-dim"`

	// RouteThreshold is the minimum similarity for a route to match.
	RouteThreshold float64 `json:"route-threshold" mapstructure:"route-threshold"`
}

// NewBotOptions creates default bot options.
func NewBotOptions() *BotOptions {
	return &BotOptions{
		FAQCollection:  "faqs",
		FAQDataPath:    "resources/faq_data.csv",
		TopK:           2,
		EmbeddingDim:   768, // nomic-embed-text dimension
		RouteThreshold: 0.72,
	}
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTP:   httpopts.NewOptions(),
		Log:    logopts.NewOptions(),
		Milvus: milvusopts.NewOptions(),
		Ollama: ollamaopts.NewOptions(),
		SQLite: sqliteopts.NewOptions(),
		Bot:    NewBotOptions(),
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Milvus.AddFlags(fs)
	o.Ollama.AddFlags(fs)
	o.SQLite.AddFlags(fs)
	o.addBotFlags(fs)
}

func (o *Options) addBotFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Bot.FAQCollection, "bot.faq-collection", o.Bot.FAQCollection, "FAQ knowledge base collection name")
	fs.StringVar(&o.Bot.FAQDataPath, "bot.faq-data-path", o.Bot.FAQDataPath, "CSV file with FAQ entries to ingest at startup")
	fs.IntVar(&o.Bot.TopK, "bot.top-k", o.Bot.TopK, "Number of FAQ entries retrieved per query")
	fs.IntVar(&o.Bot.EmbeddingDim, "bot.embedding-dim", o.Bot.EmbeddingDim, "Embedding vector dimension")
	fs.Float64Var(&o.Bot.RouteThreshold, "bot.route-threshold", o.Bot.RouteThreshold, "Minimum similarity for intent routing")
}

// Validate validates the options.
func (o *Options) Validate() error {
	if err := o.Log.Validate(); err != nil {
		return err
	}
	for _, errs := range [][]error{
		o.HTTP.Validate(),
		o.Milvus.Validate(),
		o.Ollama.Validate(),
		o.SQLite.Validate(),
	} {
		if len(errs) > 0 {
			return errs[0]
		}
	}

	if o.Bot.FAQCollection == "" {
		return fmt.Errorf("bot.faq-collection is required")
	}
	if o.Bot.TopK <= 0 {
		return fmt.Errorf("bot.top-k must be positive")
	}
	if o.Bot.EmbeddingDim <= 0 {
		return fmt.Errorf("bot.embedding-dim must be positive")
	}
	if o.Bot.RouteThreshold < -1 || o.Bot.RouteThreshold > 1 {
		return fmt.Errorf("bot.route-threshold must be within [-1, 1]")
	}
	return nil
}

// Complete completes the options.
func (o *Options) Complete() error {
	return o.HTTP.Complete()
}
