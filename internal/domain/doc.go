// Package domain contains the business entities of the driver service:
// cars and the drivers assigned to them.
package domain
