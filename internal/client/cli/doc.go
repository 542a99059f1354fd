// Package cli implements the interactive NoticeEase terminal client.
//
// The client is an offline-first shell over the local notice store: every
// command renders from the store, and only "refresh" reaches the network.
// A REPL reads one command per line and dispatches to App methods.
//
// Commands
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - verify <token> — confirm the account email
//	  - login          — authenticate and enable notifications
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - notices        — list cached notices (newest first)
//	  - read <sno>     — open a notice and mark it read
//	  - save <sno> [dir] — export a notice attachment to disk
//	  - filter ...     — set or clear the type/subject filter
//	  - refresh        — fetch new notices into the store
//	  - status         — session and token expiry summary
//	  - logout         — log out and wipe local state
//	  - exit | quit    — leave the program
package cli
