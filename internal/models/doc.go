// Package models defines domain entities and persistence interfaces for the beatly backend.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [Track] : Catalog track metadata from the track search provider
//   - [SongRef] : The user-supplied (title, artist) identity of a song
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Playlist] : User playlists with soft delete support
//   - [PlaylistTrack] : Junction rows linking playlists to tracks with ordering
//   - [HistoryEntry] : Listening history rows
//   - [Subscription] : Subscription records written by the payment webhook layer
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and (where applicable) soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
