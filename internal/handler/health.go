package handler

import (
	"net/http"
	"time"

	"backoffice/internal/infra"
	"backoffice/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the database, Redis, and the state of the
// supplier feed circuit breaker. It is intentionally unauthenticated so load
// balancers can probe it.
func Health(db *gorm.DB, rdb *redis.Client, feedCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status := http.StatusOK
		checks := gin.H{}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}

		if err := rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
			dlq := gin.H{}
			for _, queue := range []string{worker.QueueImport, worker.QueueEmail} {
				if n, err := worker.DLQLength(ctx, rdb, queue); err == nil {
					dlq[queue] = n
				}
			}
			checks["dlq"] = dlq
		}

		checks["feed_circuit"] = feedCB.State().String()

		c.JSON(status, gin.H{
			"status": map[bool]string{true: "ok", false: "degraded"}[status == http.StatusOK],
			"time":   time.Now().UTC().Format(time.RFC3339),
			"checks": checks,
		})
	}
}
