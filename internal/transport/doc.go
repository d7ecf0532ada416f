// Package transport builds the single-use HTTP clients behind every read.
//
// A client built here never reuses a connection, applies its timeout to the
// connect phase and to each individual read on the socket, and carries its
// own redirect policy so that two requests never influence each other.
package transport
