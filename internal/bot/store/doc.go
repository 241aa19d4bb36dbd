// Package store provides the data access layer for the shopbot service.
//
// It covers two backends: the Milvus FAQ knowledge base used for
// retrieval and the SQLite product catalog used for ad-hoc read-only
// queries.
package store
