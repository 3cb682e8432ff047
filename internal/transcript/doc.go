// Package transcript persists chat exchanges in a SQLite database.
//
// A [Store] implements chat.Recorder. Each processed turn becomes one row in
// the exchanges table; failed turns are kept with their error text. The
// store is optional: tripd only opens it when TRANSCRIPT_DB is set.
package transcript
