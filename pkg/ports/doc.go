// Package ports defines the interfaces the catalog core requires from its
// driven adapters. Implementations live under internal/adapters.
package ports
