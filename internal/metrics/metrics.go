package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cartwheel-io/storefront/internal/cart"
	"github.com/cartwheel-io/storefront/internal/domain"
)

var (
	cartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Total number of units currently in the cart",
		},
	)

	cartLines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_lines",
			Help: "Number of distinct product lines currently in the cart",
		},
	)

	cartUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cart_updates_total",
			Help: "Total number of cart mutations published to subscribers",
		},
	)
)

// BindCart subscribes the gauges to the store's feeds. The subscribe-time
// replay seeds the gauges with the current state; the update counter starts
// ticking with the first real mutation. Gauge updates are cheap enough to
// run inline on the feed.
func BindCart(store *cart.Store) {
	replaying := true
	store.Lines().Subscribe(func(lines []domain.CartLine) {
		cartLines.Set(float64(len(lines)))
		if replaying {
			replaying = false
			return
		}
		cartUpdatesTotal.Inc()
	})

	store.TotalCount().Subscribe(func(count int) {
		cartItems.Set(float64(count))
	})
}
