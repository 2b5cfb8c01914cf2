// Command scoreterm scores a single term against one or more contexts
// in-process, without starting the HTTP server or touching storage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/config"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/fusion"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/labeler"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/scoring"
)

func main() {
	term := flag.String("term", "", "term to score (required)")
	locale := flag.String("locale", "en-US", "locale tag for the contexts")
	contextsFlag := flag.String("contexts", "", "contexts to score against, separated by '|'")
	flag.Parse()

	if *term == "" || *contextsFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: scoreterm -term=<term> -contexts=\"context one|context two\"")
		os.Exit(2)
	}
	contexts := strings.Split(*contextsFlag, "|")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	svc := &scoring.Service{
		EmbeddingDim: cfg.EmbeddingDim,
		Labeler:      labeler.NewHeuristicLabeler(),
		FusionEngine: fusion.NewEngine(),
		Storage:      nil,
	}

	result, err := svc.ScoreTerm(context.Background(), *term, contexts, *locale, 0, false)
	if err != nil {
		log.Fatalf("scoring failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
}
