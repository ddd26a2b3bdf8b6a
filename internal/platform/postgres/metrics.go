// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// StatSource is satisfied by *pgxpool.Pool.
type StatSource interface {
	Stat() *pgxpool.Stat
}

// PoolStatsCollector exports pgxpool statistics as Prometheus metrics.
type PoolStatsCollector struct {
	pool    StatSource
	service string

	acquiredConns    *prometheus.Desc
	idleConns        *prometheus.Desc
	totalConns       *prometheus.Desc
	maxConns         *prometheus.Desc
	acquireCount     *prometheus.Desc
	acquireDuration  *prometheus.Desc
	emptyAcquires    *prometheus.Desc
	canceledAcquires *prometheus.Desc
}

// NewPoolStatsCollector creates a collector for pool, labelled by service.
func NewPoolStatsCollector(pool StatSource, service string) *PoolStatsCollector {
	labels := []string{"service"}
	return &PoolStatsCollector{
		pool:    pool,
		service: service,
		acquiredConns: prometheus.NewDesc(
			"db_pool_acquired_connections", "Number of currently acquired connections", labels, nil),
		idleConns: prometheus.NewDesc(
			"db_pool_idle_connections", "Number of currently idle connections", labels, nil),
		totalConns: prometheus.NewDesc(
			"db_pool_total_connections", "Total number of connections in the pool", labels, nil),
		maxConns: prometheus.NewDesc(
			"db_pool_max_connections", "Maximum number of connections allowed", labels, nil),
		acquireCount: prometheus.NewDesc(
			"db_pool_acquire_count_total", "Total number of connection acquires", labels, nil),
		acquireDuration: prometheus.NewDesc(
			"db_pool_acquire_duration_seconds_total", "Total time spent acquiring connections in seconds", labels, nil),
		emptyAcquires: prometheus.NewDesc(
			"db_pool_empty_acquire_count_total", "Total number of acquires that had to wait for a connection", labels, nil),
		canceledAcquires: prometheus.NewDesc(
			"db_pool_canceled_acquire_count_total", "Total number of canceled connection acquires", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (collector *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.acquiredConns
	ch <- collector.idleConns
	ch <- collector.totalConns
	ch <- collector.maxConns
	ch <- collector.acquireCount
	ch <- collector.acquireDuration
	ch <- collector.emptyAcquires
	ch <- collector.canceledAcquires
}

// Collect implements prometheus.Collector.
func (collector *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stat := collector.pool.Stat()
	gauge := func(desc *prometheus.Desc, value float64) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, value, collector.service)
	}
	counter := func(desc *prometheus.Desc, value float64) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, value, collector.service)
	}

	gauge(collector.acquiredConns, float64(stat.AcquiredConns()))
	gauge(collector.idleConns, float64(stat.IdleConns()))
	gauge(collector.totalConns, float64(stat.TotalConns()))
	gauge(collector.maxConns, float64(stat.MaxConns()))
	counter(collector.acquireCount, float64(stat.AcquireCount()))
	counter(collector.acquireDuration, stat.AcquireDuration().Seconds())
	counter(collector.emptyAcquires, float64(stat.EmptyAcquireCount()))
	counter(collector.canceledAcquires, float64(stat.CanceledAcquireCount()))
}
