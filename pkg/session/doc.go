/*
Package session implements sketch sessions and persistence orchestration.

A session pairs a document with the operator currently running on it. The
Manager serializes access per session, optionally across replicas through a
distributed lock, loads documents from a DocumentStore on first use and saves
them whenever an operator run completes.
*/
package session
