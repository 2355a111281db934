package handlers

import (
	"time"

	"media-server/internal/database"
	"media-server/internal/ingest"
	"media-server/internal/reconcile"
	"media-server/internal/startup"
	"media-server/internal/store"
	"media-server/internal/thumbnailer"
)

type Handlers struct {
	catalog    *database.Database
	store      *store.Store
	pipeline   *ingest.Pipeline
	reconciler *reconcile.Reconciler
	extractor  *thumbnailer.Extractor
	config     *startup.Config
	startTime  time.Time
}

func New(catalog *database.Database, st *store.Store, pipeline *ingest.Pipeline,
	reconciler *reconcile.Reconciler, extractor *thumbnailer.Extractor, config *startup.Config) *Handlers {
	return &Handlers{
		catalog:    catalog,
		store:      st,
		pipeline:   pipeline,
		reconciler: reconciler,
		extractor:  extractor,
		config:     config,
		startTime:  time.Now(),
	}
}
