// Package papermill harvests academic documents from online sources, turns
// them into plain text, and assembles a normalized corpus used to train an
// incremental word-embedding model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, pdf/, word2vec/).
package papermill
