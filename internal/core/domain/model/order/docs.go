// Package order holds the Order aggregate, its LineItem value object and the
// Status state machine.
//
// Orders are placed as Pending and move through Accepted, Prepared and
// OutForDelivery to Delivered, or from Pending straight to Cancelled.
// Every move names the acting party; the aggregate rejects actors without a
// relationship to the order before it looks at the lifecycle edge.
package order
