package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	imagesUploadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_images_uploaded_total",
			Help: "Total number of uploaded images that were stored",
		},
	)

	orphansMaterializedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_orphans_materialized_total",
			Help: "Total number of image rows created from orphaned files",
		},
	)

	backupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_backups_total",
			Help: "Total number of backup attempts by status",
		},
		[]string{"status"},
	)

	backupSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_backup_size_bytes",
			Help:    "Size of created backup archives",
			Buckets: prometheus.ExponentialBuckets(1<<20, 4, 8), // 1MiB .. 16GiB
		},
	)
)
