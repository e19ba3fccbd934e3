package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wb_rooms_created_total",
			Help: "Total rooms created",
		},
	)

	RoomJoins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wb_room_joins_total",
			Help: "Total successful room joins",
		},
	)

	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wb_messages_posted_total",
			Help: "Total chat messages posted",
		},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wb_users_registered_total",
			Help: "Total users registered",
		},
	)

	// Fan-out metrics
	EventsBroadcast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wb_events_broadcast_total",
			Help: "Total events dispatched to subscribers",
		},
		[]string{"type"},
	)

	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wb_events_dropped_total",
			Help: "Events dropped because the broadcast queue was full",
		},
	)

	Subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wb_subscribers",
			Help: "Currently connected event subscribers",
		},
	)

	// Upstream metrics
	RouteFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wb_route_fallbacks_total",
			Help: "Routing requests served by the haversine fallback",
		},
	)
)
