// Package observability records what happens on a board. Board mutations and
// drag outcomes go to an append-only JSON Lines journal, metrics are derived
// from that journal on demand, and a charmbracelet/log logger carries
// leveled diagnostics.
package observability
