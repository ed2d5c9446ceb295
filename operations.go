package vectorizer

import "sort"

// Kind classifies an operation by its effect on the deployment's data.
type Kind uint32

const (
	// Read operations leave data untouched and may be served by any node
	// the read preference selects.
	Read Kind = iota
	// Write operations mutate data and are only ever served by the master.
	Write
)

func (k Kind) String() string {
	if k == Write {
		return "write"
	}
	return "read"
}

// Operation names one public SDK call. The name is the routing key: KindOf
// decides whether a call may leave the master.
type Operation string

const (
	OpHealthCheck           Operation = "health_check"
	OpGetStats              Operation = "get_stats"
	OpGetIndexingProgress   Operation = "get_indexing_progress"
	OpListCollections       Operation = "list_collections"
	OpGetCollectionInfo     Operation = "get_collection_info"
	OpCreateCollection      Operation = "create_collection"
	OpDeleteCollection      Operation = "delete_collection"
	OpEmbedText             Operation = "embed_text"
	OpInsertTexts           Operation = "insert_texts"
	OpInsertVectors         Operation = "insert_vectors"
	OpListVectors           Operation = "list_vectors"
	OpGetVector             Operation = "get_vector"
	OpUpdateVector          Operation = "update_vector"
	OpDeleteVectors         Operation = "delete_vectors"
	OpSearchVectors         Operation = "search_vectors"
	OpSemanticSearch        Operation = "semantic_search"
	OpContextualSearch      Operation = "contextual_search"
	OpIntelligentSearch     Operation = "intelligent_search"
	OpMultiCollectionSearch Operation = "multi_collection_search"
	OpHybridSearch          Operation = "hybrid_search"
	OpBatchInsertTexts      Operation = "batch_insert_texts"
	OpBatchSearchVectors    Operation = "batch_search_vectors"
	OpBatchUpdateVectors    Operation = "batch_update_vectors"
	OpBatchDeleteVectors    Operation = "batch_delete_vectors"
	OpSummarizeText         Operation = "summarize_text"
	OpSummarizeContext      Operation = "summarize_context"
	OpGetSummary            Operation = "get_summary"
	OpListSummaries         Operation = "list_summaries"
	OpDiscover              Operation = "discover"
	OpFilterCollections     Operation = "filter_collections"
	OpScoreCollections      Operation = "score_collections"
	OpExpandQueries         Operation = "expand_queries"
	OpGetFileContent        Operation = "get_file_content"
	OpListFiles             Operation = "list_files_in_collection"
	OpGetFileSummary        Operation = "get_file_summary"
	OpGetFileChunks         Operation = "get_file_chunks"
	OpGetProjectOutline     Operation = "get_project_outline"
	OpGetRelatedFiles       Operation = "get_related_files"
	OpUploadFile            Operation = "upload_file"
)

// operationKinds is the single source of truth for request routing. Every
// public SDK operation maps to exactly one kind here; new operations are
// added to this table, never as conditionals at call sites.
var operationKinds = map[Operation]Kind{
	OpHealthCheck:           Read,
	OpGetStats:              Read,
	OpGetIndexingProgress:   Read,
	OpListCollections:       Read,
	OpGetCollectionInfo:     Read,
	OpCreateCollection:      Write,
	OpDeleteCollection:      Write,
	OpEmbedText:             Read,
	OpInsertTexts:           Write,
	OpInsertVectors:         Write,
	OpListVectors:           Read,
	OpGetVector:             Read,
	OpUpdateVector:          Write,
	OpDeleteVectors:         Write,
	OpSearchVectors:         Read,
	OpSemanticSearch:        Read,
	OpContextualSearch:      Read,
	OpIntelligentSearch:     Read,
	OpMultiCollectionSearch: Read,
	OpHybridSearch:          Read,
	OpBatchInsertTexts:      Write,
	OpBatchSearchVectors:    Read,
	OpBatchUpdateVectors:    Write,
	OpBatchDeleteVectors:    Write,
	OpSummarizeText:         Write,
	OpSummarizeContext:      Write,
	OpGetSummary:            Read,
	OpListSummaries:         Read,
	OpDiscover:              Read,
	OpFilterCollections:     Read,
	OpScoreCollections:      Read,
	OpExpandQueries:         Read,
	OpGetFileContent:        Read,
	OpListFiles:             Read,
	OpGetFileSummary:        Read,
	OpGetFileChunks:         Read,
	OpGetProjectOutline:     Read,
	OpGetRelatedFiles:       Read,
	OpUploadFile:            Write,
}

// KindOf reports the kind of op. Unlisted names classify as Write: the
// master serves every operation, so the conservative default cannot land a
// mutation on a replica.
func KindOf(op Operation) Kind {
	if kind, ok := operationKinds[op]; ok {
		return kind
	}
	return Write
}

// Operations returns every operation known to the classifier, sorted by
// name.
func Operations() []Operation {
	ops := make([]Operation, 0, len(operationKinds))
	for op := range operationKinds {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
