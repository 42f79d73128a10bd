// Package monitoring serves operational stats on a side port, separate from
// the public API so ops probes never compete with admin traffic.
package monitoring

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"aid-backend/internal/cache"
	"aid-backend/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type Server struct {
	db   *pgxpool.Pool
	port int
}

func NewServer(db *pgxpool.Pool, port int) *Server {
	return &Server{db: db, port: port}
}

// Start runs the monitoring HTTP server. Blocks; run on its own goroutine.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/monitoring/system", s.handleSystem)
	mux.HandleFunc("/monitoring/database", s.handleDatabase)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

type systemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskFreeGB    uint64  `json:"disk_free_gb"`
	RedisHealthy  bool    `json:"redis_healthy"`
}

func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	stats := systemStats{RedisHealthy: cache.IsHealthy()}

	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsedMB = vm.Used / 1024 / 1024
		stats.MemoryTotalMB = vm.Total / 1024 / 1024
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
		stats.DiskFreeGB = du.Free / 1024 / 1024 / 1024
	}

	utils.JSON(w, http.StatusOK, stats)
}

type databaseStats struct {
	ActiveConnections int            `json:"active_connections"`
	DatabaseSizeMB    float64        `json:"database_size_mb"`
	TableRows         map[string]int `json:"table_rows"`
}

func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats := databaseStats{TableRows: make(map[string]int)}

	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM pg_stat_activity WHERE datname = current_database()`,
	).Scan(&stats.ActiveConnections)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "database stats unavailable")
		return
	}

	var sizeBytes int64
	if err := s.db.QueryRow(ctx, `SELECT pg_database_size(current_database())`).Scan(&sizeBytes); err == nil {
		stats.DatabaseSizeMB = float64(sizeBytes) / 1024 / 1024
	}

	for _, table := range []string{"beneficiaries", "distribution_requests", "tasks", "alerts"} {
		var count int
		if err := s.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err == nil {
			stats.TableRows[table] = count
		}
	}

	utils.JSON(w, http.StatusOK, stats)
}
