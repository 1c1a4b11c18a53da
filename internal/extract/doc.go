// Package extract pulls financial facts out of filing text with ordered
// regular-expression rules.
//
// Point-in-time metrics and quarterly series are first-match-wins per key.
// Announcements and operations collect every match of every rule. All
// functions are pure and safe for concurrent use.
package extract
