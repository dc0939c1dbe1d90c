// Package ticket contains the support ticket aggregate: a customer-opened
// conversation thread, optionally linked to an order, handled by support staff
// through a small status graph.
package ticket
