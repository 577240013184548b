// Package httpapp provides the HTTP server for the village council board.
//
//	@title						NIRDonia Village Council API
//	@version					1.0.0
//	@description				A community message board for the NIRDonia village council.
//	@description
//	@description				Villagers post short messages (optionally anonymous, tagged with a
//	@description				task type), browse the 20 most recent posts, and vote posts up or
//	@description				down. Moderators can delete posts. Every response carries a
//	@description				`success` flag; failures add a human-readable `message`.
//	@description
//	@description				Each post carries a short shareable `hash` identifier (8 uppercase
//	@description				hex characters) derived from its content, author and creation time.
//
//	@contact.name				NIRDonia Village Council
//	@license.name				MIT
//
//	@host						localhost:3001
//	@BasePath					/
//
//	@tag.name					Council Posts
//	@tag.description			Create, browse, vote on and delete council board posts.
//
//	@tag.name					Meta
//	@tag.description			Health check and endpoint catalog.
package httpapp
