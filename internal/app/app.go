// Package app wires configuration, storage, clients, and services into
// the shared core used by cmd/council-server and cmd/council-stress.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/council/internal/clients/eodhd"
	"github.com/bobmcallan/council/internal/clients/gemini"
	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/interfaces"
	"github.com/bobmcallan/council/internal/models"
	"github.com/bobmcallan/council/internal/services/council"
	"github.com/bobmcallan/council/internal/services/market"
	"github.com/bobmcallan/council/internal/storage"
)

// App holds all initialized services, clients, and the MCP server.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Storage        interfaces.StorageManager
	MarketClient   interfaces.MarketDataClient
	GenAIClient    interfaces.GenAIClient
	MarketService  interfaces.MarketService
	CouncilService interfaces.CouncilService
	MCPServer      *server.MCPServer
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, services, and the MCP server.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Config resolution: explicit path, COUNCIL_CONFIG, binary dir,
	// then the development fallback.
	if configPath == "" {
		configPath = os.Getenv("COUNCIL_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "council.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/council.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve the storage path relative to the binary directory.
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	var marketClient interfaces.MarketDataClient
	if config.Clients.EODHD.APIKey != "" {
		marketClient = eodhd.NewClient(config.Clients.EODHD.APIKey,
			eodhd.WithLogger(logger),
			eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
			eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
			eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("EODHD API key not configured - market data will be unavailable")
	}

	var genaiClient interfaces.GenAIClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			genaiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - analyst rounds will use fallbacks")
	}

	marketService := market.NewService(marketClient, logger,
		market.WithNewsCap(config.Debate.NewsMaxBytes),
		market.WithNewsPerQuery(config.Debate.NewsPerQuery),
	)

	councilService := council.NewService(genaiClient, marketService, logger,
		council.WithCatalystRules(catalystRules(config)),
	)

	mcpServer := server.NewMCPServer(
		"council",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:         config,
		Logger:         logger,
		Storage:        storageManager,
		MarketClient:   marketClient,
		GenAIClient:    genaiClient,
		MarketService:  marketService,
		CouncilService: councilService,
		MCPServer:      mcpServer,
		StartupTime:    startupStart,
	}

	a.registerTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// catalystRules maps configured catalyst phrases onto service rules,
// falling back to the built-in set when none are configured.
func catalystRules(config *common.Config) []council.CatalystRule {
	if len(config.Debate.CatalystRules) == 0 {
		return council.DefaultCatalystRules
	}

	rules := make([]council.CatalystRule, 0, len(config.Debate.CatalystRules))
	for _, r := range config.Debate.CatalystRules {
		if r.Phrase == "" {
			continue
		}
		rules = append(rules, council.CatalystRule{
			Phrase:        r.Phrase,
			MinConfidence: r.MinConfidence,
		})
	}
	return rules
}

// AnalyzeAndStore runs the debate for one ticker and persists the
// completed case. A storage failure is logged but does not void the
// verdict.
func (a *App) AnalyzeAndStore(ctx context.Context, ticker string, profile models.Profile) (*models.Case, error) {
	c, err := a.CouncilService.Analyze(ctx, ticker, profile)
	if err != nil {
		return nil, err
	}

	if err := a.Storage.VerdictStore().SaveCase(ctx, c); err != nil {
		a.Logger.Warn().Str("ticker", ticker).Err(err).Msg("Failed to persist case")
	}
	return c, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
