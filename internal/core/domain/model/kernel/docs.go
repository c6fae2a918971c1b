// Package kernel provides the shared value objects of the orderhub domain:
//   - UUID: identifier of orders, notifications and every principal
//   - Actor and Role: the authenticated principal a core operation runs for
//
// Both are immutable; their zero values are invalid and fail Validate.
package kernel
