package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"game-data-server/src/client"
	"game-data-server/src/codec"
	"game-data-server/src/config"
	"game-data-server/src/logger"
	"game-data-server/src/network"

	"github.com/goccy/go-json"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "", "path to config file (defaults are used when empty)")
	baseURL := flag.String("url", "", "server base URL (defaults to the configured host and port)")
	endpoint := flag.String("endpoint", "all", "endpoint to query, e.g. /exchange, or all")
	interval := flag.Duration("interval", 0, "poll interval; 0 queries once")
	flag.Parse()

	conf := config.NewDefaultConfig()
	if *configPath != "" {
		loaded, err := config.NewConfig(*configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		conf = loaded
	}

	if *baseURL == "" {
		*baseURL = fmt.Sprintf("http://%s:%d", conf.Host, conf.Port)
	}

	probeLogger := logger.NewLogger(conf, "Probe")
	gds := client.NewGdsClient(*baseURL, network.NewAsyncNetworkManager(conf.MConfig, probeLogger), codec.DefaultRegistry())

	endpoints := client.Endpoints
	if *endpoint != "all" {
		endpoints = []string{*endpoint}
	}

	failed := probe(gds, endpoints)
	if *interval <= 0 {
		if failed {
			probeLogger.Critical("One or more endpoints failed")
		}
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for range ticker.C {
		probe(gds, endpoints)
	}
}

// -----------------------------------------------------------------------------

// probe prints every endpoint's answer and reports whether any failed.
func probe(gds *client.GdsClient, endpoints []string) bool {
	failed := false
	for _, path := range endpoints {
		body, err := gds.Raw(path)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed = true
			continue
		}

		var out bytes.Buffer
		if err := json.Indent(&out, body, "", "  "); err != nil {
			out.Reset()
			out.Write(body)
		}
		fmt.Printf("%s:\n%s\n", path, out.String())
	}
	return failed
}
