package metrics

import (
	"strconv"
	"time"

	"race-admin/core/metrics"

	"github.com/gofiber/fiber/v2"
)

// New records request count and latency per route.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// Route path keeps label cardinality bounded.
		path := c.Route().Path
		labels := []string{path, c.Method(), strconv.Itoa(status)}
		metrics.RequestsTotal.WithLabelValues(labels...).Inc()
		metrics.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}
