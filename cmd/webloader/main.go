package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"webloader/pkg/config"
	"webloader/pkg/fetch"
	"webloader/pkg/loader"
)

// runConfig is the YAML file shape: the seed URL plus the loader options.
type runConfig struct {
	RootURL string         `yaml:"root_url"`
	Options config.Options `yaml:",inline"`
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	configFileFlag := flag.String("config", "", "Path to YAML config file")
	urlFlag := flag.String("url", "", "Seed URL (overrides root_url from config)")
	depthFlag := flag.Int("depth", -1, "Max crawl depth (overrides config; 0 = root only)")
	timeoutFlag := flag.Int64("timeout-ms", 0, "Per-fetch timeout in milliseconds (overrides config)")
	outputFlag := flag.String("output", "", "Output file for JSONL documents (default: stdout)")
	logLevelFlag := flag.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevelFlag)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", *logLevelFlag, err)
	} else {
		log.SetLevel(level)
	}

	// --- Load Configuration ---
	var runCfg runConfig
	if *configFileFlag != "" {
		log.Infof("Loading configuration from %s", *configFileFlag)
		yamlFile, err := os.ReadFile(*configFileFlag)
		if err != nil {
			log.Fatalf("Read config file '%s' error: %v", *configFileFlag, err)
		}
		if err := yaml.Unmarshal(yamlFile, &runCfg); err != nil {
			log.Fatalf("Parse config file '%s' error: %v", *configFileFlag, err)
		}
	}

	// Flag overrides
	if *urlFlag != "" {
		runCfg.RootURL = *urlFlag
	}
	if *depthFlag >= 0 {
		runCfg.Options.MaxDepth = depthFlag
	}
	if *timeoutFlag > 0 {
		runCfg.Options.TimeoutMillis = timeoutFlag
	}
	if runCfg.RootURL == "" {
		log.Fatal("Error: a seed URL is required (-url flag or root_url in config)")
	}

	cfg, warnings, err := runCfg.Options.Resolve(runCfg.RootURL)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	for _, w := range warnings {
		log.Warn(w)
	}

	// --- Output Destination ---
	out := os.Stdout
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			log.Fatalf("Cannot create output file '%s': %v", *outputFlag, err)
		}
		defer f.Close()
		out = f
	}

	// --- Run ---
	fetcher := fetch.NewHTTPFetcher(fetch.NewClient(log), cfg.Timeout, logrus.NewEntry(log))
	l := loader.New(cfg, fetcher, log)

	docs := l.Load(context.Background())
	stats := l.Stats()

	encoder := json.NewEncoder(out)
	for _, doc := range docs {
		if err := encoder.Encode(doc); err != nil {
			log.Fatalf("Failed to encode document: %v", err)
		}
	}

	summary := log.WithFields(logrus.Fields{
		"documents":       len(docs),
		"pages_loaded":    stats.PagesLoaded,
		"fetch_failures":  stats.FetchFailures,
		"duplicate_links": stats.DuplicateLinks,
	})
	if stats.FetchFailures > 0 {
		summary = summary.WithField("failure_categories", stats.FailuresByCategory)
	}
	summary.Info("Load complete")

	if len(docs) == 0 {
		os.Exit(1) // Root unreachable
	}
}
