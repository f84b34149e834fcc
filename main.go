package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/bodul/crossword/internal/store"
)

func main() {
	configureLogging()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "crossword.db"
	}

	st, err := store.Open(dbPath)
	if err != nil {
		logrus.WithError(err).Fatal("main: open store")
	}
	defer st.Close()

	ctx := context.Background()
	projectID := os.Getenv("GCP_PROJECT_ID")

	var clues *ClueClient
	if projectID != "" {
		clues, err = NewClueClient(ctx, projectID, os.Getenv("GCP_REGION"))
		if err != nil {
			logrus.WithError(err).Fatal("main: init clue client")
		}
		defer clues.Close()
		logrus.WithField("project", projectID).Info("main: clue client initialized")
	} else {
		logrus.Info("main: GCP_PROJECT_ID not set, candidate generation disabled")
	}

	srv := NewServer(st, clues)
	if seed := os.Getenv("SYNTH_SEED"); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			logrus.WithError(err).Fatal("main: parse SYNTH_SEED")
		}
		srv.synthSeed = n
		logrus.WithField("seed", n).Info("main: synthesis seed pinned")
	}

	logrus.WithField("port", port).Info("main: server listening")
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		logrus.WithError(err).Fatal("main: server stopped")
	}
}

// configureLogging sets up logrus the way the rest of the codebase
// expects: structured fields, level from LOG_LEVEL (default info).
func configureLogging() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("main: unknown LOG_LEVEL, defaulting to info")
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}
