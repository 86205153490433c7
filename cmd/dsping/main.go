// Command dsping connects a datastore backend and round-trips a probe entity.
//
// Connection details come from a YAML file (-config) overlaid with
// DATASTORE_-prefixed environment variables (a .env file is honored).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suparena/datastore"
	"github.com/suparena/datastore/ddb"
	"github.com/suparena/datastore/mapping"
	"github.com/suparena/datastore/redisstore"
)

const envPrefix = "DATASTORE_"

var (
	backendFlag = flag.String("backend", "redis", "Backend to connect: redis or dynamodb")
	configFlag  = flag.String("config", "", "Path to a YAML connection details file")
	verboseFlag = flag.Bool("verbose", false, "Enable debug logging")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := datastore.GetVersionInfo()
		fmt.Printf("dsping version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		os.Exit(0)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verboseFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := run(); err != nil {
		log.Error().Err(err).Msg("dsping failed")
		os.Exit(1)
	}
}

func run() error {
	details := datastore.ConnectionDetailsFromEnv(envPrefix)
	if *configFlag != "" {
		fromFile, err := datastore.LoadConnectionDetails(*configFlag)
		if err != nil {
			return err
		}
		details = datastore.MergeConnectionDetails(fromFile, details)
	}

	var factory datastore.SessionFactory
	switch *backendFlag {
	case "redis":
		factory = redisstore.NewFactory()
	case "dynamodb":
		factory = ddb.NewFactory()
	default:
		return fmt.Errorf("unknown backend %q (want redis or dynamodb)", *backendFlag)
	}

	mc := mapping.NewContext()
	datastore.InitializeConverters(mc)

	ds, err := datastore.NewWithDetails(factory, mc, details)
	if err != nil {
		return err
	}

	ctx, session, err := ds.Connect(context.Background())
	if err != nil {
		return err
	}
	log.Info().Str("backend", *backendFlag).Str("session", session.ID()).Msg("connected")

	if kv, ok := session.(datastore.KeyValueSession); ok {
		probe := map[string]string{"probe": session.ID(), "at": time.Now().Format(time.RFC3339)}
		key := "dsping:" + session.ID()

		if err := kv.Put(ctx, key, probe); err != nil {
			return fmt.Errorf("probe write failed: %w", err)
		}
		var got map[string]string
		if err := kv.Get(ctx, key, &got); err != nil {
			return fmt.Errorf("probe read failed: %w", err)
		}
		if err := kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("probe delete failed: %w", err)
		}
		log.Info().Str("key", key).Msg("probe round-trip ok")
	}

	ctx = datastore.ClearCurrentConnection(ctx)
	if err := session.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect failed: %w", err)
	}
	log.Info().Msg("disconnected")
	return nil
}
