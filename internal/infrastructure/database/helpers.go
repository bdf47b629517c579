package database

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Close đóng tất cả connections trong pool. Safe to call multiple times.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		log.Debug().Msg("[DATABASE] Pool is already closed or was never initialized")
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
	log.Info().Msg("[DATABASE] Connection pool closed successfully")

	return nil
}

// PoolStats là snapshot thống kê của connection pool, trả về trong /health
type PoolStats struct {
	AcquiredConns      int32         `json:"acquired_conns"`
	IdleConns          int32         `json:"idle_conns"`
	TotalConns         int32         `json:"total_conns"`
	MaxConns           int32         `json:"max_conns"`
	AcquireCount       int64         `json:"acquire_count"`
	AvgAcquireDuration time.Duration `json:"avg_acquire_duration"`
}

// Stats trả về snapshot của connection pool statistics
func (db *PostgresDB) Stats() *PoolStats {
	if db.Pool == nil {
		return &PoolStats{}
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:      raw.AcquiredConns(),
		IdleConns:          raw.IdleConns(),
		TotalConns:         raw.TotalConns(),
		MaxConns:           raw.MaxConns(),
		AcquireCount:       raw.AcquireCount(),
		AvgAcquireDuration: calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}
}

// calculateAvgDuration là helper để tính average acquire duration
func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}
