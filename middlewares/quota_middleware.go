package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const defaultDailyQuota = 50

// QuotaMiddleware caps analyses per user per day. The counter lives in
// Redis; if Redis is down the gate fails open rather than blocking the
// whole product.
func QuotaMiddleware(rdb *goredis.Client) gin.HandlerFunc {
	quota := defaultDailyQuota
	if v, err := strconv.Atoi(os.Getenv("ANALYSIS_DAILY_QUOTA")); err == nil && v > 0 {
		quota = v
	}

	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		userID := c.GetUint("userID")
		key := fmt.Sprintf("quota:%d:%s", userID, time.Now().UTC().Format("2006-01-02"))

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("quota check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, 24*time.Hour)
		}

		if count > int64(quota) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "daily analysis quota exceeded",
			})
			return
		}
		c.Next()
	}
}
