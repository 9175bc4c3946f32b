// Package scryfall fetches random cards from the Scryfall API in its plain
// text format.
package scryfall
