package jobs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/wavelinkisp/opsboard/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// StartConnectionCleanupJob deletes internet connections whose deletion
// grace period has elapsed. The same filter backs the
// /api/internet-connections/cleanup endpoint; the ticker just makes expiry
// independent of any client polling.
func StartConnectionCleanupJob(ctx context.Context) {
	interval := time.Minute
	if v := os.Getenv("CLEANUP_INTERVAL_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			interval = time.Duration(seconds) * time.Second
		}
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := SweepExpiredConnections(ctx)
				if err != nil {
					log.Printf("connection cleanup job error: %v", err)
					continue
				}
				if deleted > 0 {
					log.Printf("connection cleanup job removed %d connections", deleted)
				}
			}
		}
	}()
}

// SweepExpiredConnections removes every connection scheduled for deletion
// at or before now.
func SweepExpiredConnections(ctx context.Context) (int64, error) {
	col := database.OpenCollection("internet_connections")
	res, err := col.DeleteMany(ctx, bson.M{
		"scheduledForDeletion": bson.M{"$ne": nil, "$lte": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
