package service

import (
	"errors"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	claimOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_claim_operations_total",
			Help: "Item claim and unclaim attempts by outcome",
		},
		[]string{"operation", "result"},
	)

	relationshipOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_relationship_operations_total",
			Help: "Friend relationship operations by outcome",
		},
		[]string{"operation", "result"},
	)
)

// outcome maps an error to a low-cardinality metric label
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrNotFound):
		return "not_found"
	case errors.Is(err, common.ErrConflict):
		return "conflict"
	case errors.Is(err, common.ErrForbidden):
		return "forbidden"
	case errors.Is(err, common.ErrInvalidOperation):
		return "invalid"
	default:
		return "error"
	}
}
