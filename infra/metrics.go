package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScreeningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "screener",
		Name:      "screenings_total",
		Help:      "Screenings served, labeled by outcome.",
	}, []string{"outcome"})

	IngestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "screener",
		Name:      "ingestions_total",
		Help:      "Ingestion cycles, labeled by source and result.",
	}, []string{"source", "result"})

	IndexEntities = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "screener",
		Name:      "index_entities",
		Help:      "Entities in the currently published snapshot.",
	})
)
