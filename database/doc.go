package database

// Package database owns the connection to the embedded SQLite file and
// provides generic single-statement CRUD over any type implementing Record.
// Entity types and their table descriptions live in a separate package and
// are passed in as type parameters.
