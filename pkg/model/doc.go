// Package model holds the domain entities and hydrates them from raw JSON
// nodes of the three upstream API generations: the payload embedded in
// HTML pages, GraphQL edge listings and the private mobile API.
//
// Each entity has an ordered table of recognizers. A recognizer claims one
// or more raw keys and writes the matching fields; unknown keys are
// ignored. Hydration never fails.
package model
