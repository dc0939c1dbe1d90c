// Package returns contains the Return aggregate: a customer's request to send
// back items from a delivered order for refund or exchange, tracked through
// its own status graph from request to settlement.
package returns
