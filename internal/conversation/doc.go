// Package conversation relays learner messages to the text generator and
// returns plain text: role-play replies, translations and grammar help.
//
// None of these operations fail because the upstream service did. A reply
// degrades to a canned continuation in the learner's language, a translation
// or correction degrades to the source text, and every degraded result is
// flagged so the caller can tell.
package conversation
