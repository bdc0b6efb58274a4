// Package mood turns an account's timeline and follow list into display-ready
// reports: posts scored for sentiment and colored on a red-to-green scale with
// their median score, and followed accounts ranked by popularity.
//
// Every operation takes its Platform explicitly and builds all values fresh per
// call. No step retries; a failure anywhere discards the partial result.
package mood
