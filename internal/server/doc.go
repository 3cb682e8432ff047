// Package server exposes the chat service over HTTP.
//
// Routes:
//
//	GET  /             plain-text welcome line
//	POST /chat         one chat turn: {"message", "role", "conversation_history"}
//	GET  /status       process status and request counters
//	GET  /transcripts  recent recorded exchanges (when a store is configured)
//
// When an auth token hash is configured, /chat and /transcripts require an
// "Authorization: Bearer <token>" header whose token matches the bcrypt
// hash. Every request is logged with its status and duration.
//
// Example usage:
//
//	srv, err := server.New(server.Config{
//	    Addr:    "0.0.0.0:8080",
//	    Service: svc,
//	})
//	if err != nil {
//	    return err
//	}
//
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop(context.Background())
//
//	srv.Wait()
package server
