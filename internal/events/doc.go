// Package events defines the driver-created notification event and the
// publisher contract connecting the driver service to its outbound channel.
package events
