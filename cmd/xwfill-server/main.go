// Command xwfill-server registers httpapi's /fill-grid handler as an
// HTTP Cloud Function, the same way the teacher's src/main.go
// registered /generate-grid.
package main

import (
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crosswordsmith/xwfill/httpapi"
)

func main() {
	fs := flag.NewFlagSetWithEnvPrefix("xwfill-server", "XWFILL", flag.ContinueOnError)
	projectID := fs.String("project", "xword-x", "the BigQuery project holding the word table")
	table := fs.String("table", "xword-x.FirestoreQuery.all_words", "the fully-qualified BigQuery table to query word scopes from")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("parsing flags")
	}

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	h := httpapi.NewHandler(httpapi.NewBigQuerySource(*projectID, *table))
	funcframework.RegisterHTTPFunction("/fill-grid", h.FillGrid)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatal().Err(err).Msg("funcframework.StartHostPort")
	}
}
