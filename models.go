package vectorizer

import "math"

// Vector is a single embedding with its identity and optional metadata.
type Vector struct {
	ID       string                 `json:"id"`
	Data     []float32              `json:"data"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	// PublicKey enables server-side encryption of the vector payload.
	PublicKey string `json:"public_key,omitempty"`
}

// Validate rejects vectors the server would refuse: empty data and
// non-finite components.
func (v Vector) Validate() error {
	if len(v.Data) == 0 {
		return validationErrorf("vector %q: data must not be empty", v.ID)
	}
	for i, f := range v.Data {
		f64 := float64(f)
		if math.IsNaN(f64) || math.IsInf(f64, 0) {
			return validationErrorf("vector %q: component %d is not finite", v.ID, i)
		}
	}
	return nil
}

// TextDocument is a text to be embedded and stored by the server. An empty
// ID is filled with a generated one on insert.
type TextDocument struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Collection describes a collection to be created.
type Collection struct {
	Name             string `json:"name"`
	Dimension        int    `json:"dimension"`
	SimilarityMetric string `json:"similarity_metric,omitempty"`
	Description      string `json:"description,omitempty"`
}

// CollectionInfo is the server's view of a collection.
type CollectionInfo struct {
	Name              string                 `json:"name"`
	Dimension         int                    `json:"dimension"`
	VectorCount       int                    `json:"vector_count"`
	SimilarityMetric  string                 `json:"similarity_metric,omitempty"`
	Metric            string                 `json:"metric,omitempty"`
	Status            string                 `json:"status,omitempty"`
	DocumentCount     int                    `json:"document_count,omitempty"`
	ErrorMessage      string                 `json:"error_message,omitempty"`
	LastUpdated       string                 `json:"last_updated,omitempty"`
	CreatedAt         string                 `json:"created_at,omitempty"`
	UpdatedAt         string                 `json:"updated_at,omitempty"`
	EmbeddingProvider string                 `json:"embedding_provider,omitempty"`
	IndexingStatus    map[string]interface{} `json:"indexing_status,omitempty"`
}

// HealthStatus is the answer of GET /health.
type HealthStatus struct {
	Status       string `json:"status"`
	Version      string `json:"version,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
	Service      string `json:"service,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// CacheStats describes the server's query cache.
type CacheStats struct {
	Size      int     `json:"size"`
	Capacity  int     `json:"capacity"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// ServerStats is the answer of GET /stats.
type ServerStats struct {
	Collections   int        `json:"collections"`
	TotalVectors  int        `json:"total_vectors"`
	UptimeSeconds uint64     `json:"uptime_seconds"`
	Version       string     `json:"version"`
	Cache         CacheStats `json:"cache"`
}

// CollectionIndexingStatus is the per-collection part of IndexingProgress.
type CollectionIndexingStatus struct {
	Name               string  `json:"name"`
	Status             string  `json:"status"`
	Progress           float64 `json:"progress"`
	TotalDocuments     int     `json:"total_documents"`
	ProcessedDocuments int     `json:"processed_documents"`
	Errors             int     `json:"errors"`
}

// IndexingProgress is the answer of GET /indexing/progress.
type IndexingProgress struct {
	OverallStatus         string                     `json:"overall_status"`
	Collections           []CollectionIndexingStatus `json:"collections"`
	TotalCollections      int                        `json:"total_collections"`
	CompletedCollections  int                        `json:"completed_collections"`
	ProcessingCollections int                        `json:"processing_collections"`
}

// SearchResult is one hit of a plain collection search.
type SearchResult struct {
	ID       string                 `json:"id"`
	Score    float64                `json:"score"`
	Content  string                 `json:"content,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SearchOptions tunes a plain collection search. A zero Limit asks for the
// server default.
type SearchOptions struct {
	Limit  int
	Filter map[string]interface{}
}

// VectorList is the answer of GET /collections/{name}/vectors.
type VectorList struct {
	Vectors []Vector `json:"vectors"`
	Total   int      `json:"total,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"`
}

// ListVectorsOptions narrows a vector listing. The server caps Limit.
type ListVectorsOptions struct {
	Limit    int
	Offset   int
	MinScore float64
}

// SemanticSearchRequest drives POST /semantic_search.
type SemanticSearchRequest struct {
	Query                 string  `json:"query"`
	Collection            string  `json:"collection"`
	MaxResults            int     `json:"max_results,omitempty"`
	SemanticReranking     bool    `json:"semantic_reranking"`
	CrossEncoderReranking bool    `json:"cross_encoder_reranking,omitempty"`
	SimilarityThreshold   float64 `json:"similarity_threshold,omitempty"`
}

// ContextualSearchRequest drives POST /contextual_search.
type ContextualSearchRequest struct {
	Query            string                 `json:"query"`
	Collection       string                 `json:"collection"`
	ContextFilters   map[string]interface{} `json:"context_filters,omitempty"`
	MaxResults       int                    `json:"max_results,omitempty"`
	ContextReranking bool                   `json:"context_reranking"`
	ContextWeight    float64                `json:"context_weight,omitempty"`
}

// IntelligentSearchRequest drives POST /intelligent_search: multi-query
// expansion plus semantic reranking over one or more collections.
type IntelligentSearchRequest struct {
	Query           string   `json:"query"`
	Collections     []string `json:"collections,omitempty"`
	MaxResults      int      `json:"max_results,omitempty"`
	DomainExpansion bool     `json:"domain_expansion"`
	TechnicalFocus  bool     `json:"technical_focus"`
	MMREnabled      bool     `json:"mmr_enabled"`
	MMRLambda       float64  `json:"mmr_lambda,omitempty"`
}

// MultiCollectionSearchRequest drives POST /multi_collection_search.
type MultiCollectionSearchRequest struct {
	Query                    string   `json:"query"`
	Collections              []string `json:"collections"`
	MaxPerCollection         int      `json:"max_per_collection,omitempty"`
	MaxTotalResults          int      `json:"max_total_results,omitempty"`
	CrossCollectionReranking bool     `json:"cross_collection_reranking"`
}

// IntelligentSearchResult is one hit of the intelligent search family.
type IntelligentSearchResult struct {
	ID         string                 `json:"id"`
	Score      float64                `json:"score"`
	Content    string                 `json:"content"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Collection string                 `json:"collection,omitempty"`
	QueryUsed  string                 `json:"query_used,omitempty"`
}

// IntelligentSearchResponse is shared by the intelligent search family;
// fields that a particular endpoint does not produce stay zero.
type IntelligentSearchResponse struct {
	Results              []IntelligentSearchResult `json:"results"`
	TotalResults         int                       `json:"total_results"`
	DurationMS           int64                     `json:"duration_ms,omitempty"`
	QueriesGenerated     []string                  `json:"queries_generated,omitempty"`
	CollectionsSearched  []string                  `json:"collections_searched,omitempty"`
	ResultsPerCollection map[string]int            `json:"results_per_collection,omitempty"`
	Metadata             map[string]interface{}    `json:"metadata,omitempty"`
}

// SparseVector carries the sparse half of a hybrid search query.
type SparseVector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// HybridSearchRequest drives POST /collections/{name}/hybrid_search.
// Algorithm is one of "rrf", "weighted" or "alpha".
type HybridSearchRequest struct {
	Collection  string        `json:"collection"`
	Query       string        `json:"query"`
	QuerySparse *SparseVector `json:"query_sparse,omitempty"`
	Alpha       float64       `json:"alpha,omitempty"`
	Algorithm   string        `json:"algorithm,omitempty"`
	DenseK      int           `json:"dense_k,omitempty"`
	SparseK     int           `json:"sparse_k,omitempty"`
	FinalK      int           `json:"final_k,omitempty"`
}

// HybridSearchResult is one hit of a hybrid search.
type HybridSearchResult struct {
	ID      string                 `json:"id"`
	Score   float64                `json:"score"`
	Vector  []float32              `json:"vector,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// HybridSearchResponse is the answer of a hybrid search.
type HybridSearchResponse struct {
	Results    []HybridSearchResult `json:"results"`
	Query      string               `json:"query"`
	Alpha      float64              `json:"alpha"`
	Algorithm  string               `json:"algorithm"`
	DurationMS int64                `json:"duration_ms,omitempty"`
}

// BatchConfig tunes server-side batch execution.
type BatchConfig struct {
	MaxBatchSize    int  `json:"max_batch_size,omitempty"`
	ParallelWorkers int  `json:"parallel_workers,omitempty"`
	Atomic          bool `json:"atomic,omitempty"`
}

// BatchResponse reports the outcome of a batch mutation.
type BatchResponse struct {
	Success              bool     `json:"success"`
	Collection           string   `json:"collection"`
	Operation            string   `json:"operation"`
	TotalOperations      int      `json:"total_operations"`
	SuccessfulOperations int      `json:"successful_operations"`
	FailedOperations     int      `json:"failed_operations"`
	DurationMS           int64    `json:"duration_ms"`
	Errors               []string `json:"errors,omitempty"`
}

// BatchSearchQuery is one query of a batch search.
type BatchSearchQuery struct {
	Query          string  `json:"query"`
	Limit          int     `json:"limit,omitempty"`
	ScoreThreshold float64 `json:"score_threshold,omitempty"`
}

// BatchSearchResponse is the answer of POST /batch_search; Results holds
// one slice per query, in query order.
type BatchSearchResponse struct {
	Success           bool             `json:"success"`
	Collection        string           `json:"collection"`
	TotalQueries      int              `json:"total_queries"`
	SuccessfulQueries int              `json:"successful_queries"`
	FailedQueries     int              `json:"failed_queries"`
	DurationMS        int64            `json:"duration_ms"`
	Results           [][]SearchResult `json:"results"`
	Errors            []string         `json:"errors,omitempty"`
}

// BatchVectorUpdate changes the data and/or metadata of one vector.
type BatchVectorUpdate struct {
	ID       string                 `json:"id"`
	Data     []float32              `json:"data,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SummarizeTextRequest drives POST /summarize/text. Method is one of the
// server's summarization methods, "extractive" by default.
type SummarizeTextRequest struct {
	Text             string            `json:"text"`
	Method           string            `json:"method,omitempty"`
	MaxLength        int               `json:"max_length,omitempty"`
	CompressionRatio float64           `json:"compression_ratio,omitempty"`
	Language         string            `json:"language,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// SummarizeContextRequest drives POST /summarize/context.
type SummarizeContextRequest struct {
	Context          string            `json:"context"`
	Method           string            `json:"method,omitempty"`
	MaxLength        int               `json:"max_length,omitempty"`
	CompressionRatio float64           `json:"compression_ratio,omitempty"`
	Language         string            `json:"language,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// Summary is a stored summarization result. Summaries persist on the
// server, which is why producing one is a write.
type Summary struct {
	SummaryID        string            `json:"summary_id"`
	OriginalText     string            `json:"original_text,omitempty"`
	OriginalContext  string            `json:"original_context,omitempty"`
	Text             string            `json:"summary"`
	Method           string            `json:"method"`
	OriginalLength   int               `json:"original_length"`
	SummaryLength    int               `json:"summary_length"`
	CompressionRatio float64           `json:"compression_ratio"`
	Language         string            `json:"language"`
	Status           string            `json:"status,omitempty"`
	Message          string            `json:"message,omitempty"`
	CreatedAt        string            `json:"created_at,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// SummaryInfo is the listing form of a stored summary.
type SummaryInfo struct {
	SummaryID        string            `json:"summary_id"`
	Method           string            `json:"method"`
	Language         string            `json:"language"`
	OriginalLength   int               `json:"original_length"`
	SummaryLength    int               `json:"summary_length"`
	CompressionRatio float64           `json:"compression_ratio"`
	CreatedAt        string            `json:"created_at"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// ListSummariesResponse is the answer of GET /summaries.
type ListSummariesResponse struct {
	Summaries  []SummaryInfo `json:"summaries"`
	TotalCount int           `json:"total_count"`
	Status     string        `json:"status,omitempty"`
}

// ListSummariesOptions filters GET /summaries.
type ListSummariesOptions struct {
	Method   string
	Language string
	Limit    int
	Offset   int
}

// DiscoverRequest drives POST /discover, the full discovery pipeline:
// collection filtering, query expansion, broad search and focused rerank.
type DiscoverRequest struct {
	Query              string   `json:"query"`
	IncludeCollections []string `json:"include_collections,omitempty"`
	ExcludeCollections []string `json:"exclude_collections,omitempty"`
	MaxBullets         int      `json:"max_bullets,omitempty"`
	BroadK             int      `json:"broad_k,omitempty"`
	FocusK             int      `json:"focus_k,omitempty"`
}

// DiscoverMetrics reports timing and chunk counts for a discovery run.
type DiscoverMetrics struct {
	TotalTimeMS         int64 `json:"total_time_ms"`
	CollectionsSearched int   `json:"collections_searched"`
	QueriesGenerated    int   `json:"queries_generated"`
	ChunksFound         int   `json:"chunks_found"`
	ChunksAfterDedup    int   `json:"chunks_after_dedup"`
}

// DiscoverResponse is the answer of POST /discover. AnswerPrompt is a
// ready-to-use LLM prompt built from the discovered evidence.
type DiscoverResponse struct {
	AnswerPrompt string          `json:"answer_prompt"`
	Sections     int             `json:"sections"`
	Bullets      int             `json:"bullets"`
	Chunks       int             `json:"chunks"`
	Metrics      DiscoverMetrics `json:"metrics"`
}

// FilteredCollection is one entry of FilterCollectionsResponse.
type FilteredCollection struct {
	Name        string `json:"name"`
	VectorCount int    `json:"vector_count"`
}

// FilterCollectionsResponse is the answer of POST /discovery/filter_collections.
type FilterCollectionsResponse struct {
	FilteredCollections []FilteredCollection `json:"filtered_collections"`
	Count               int                  `json:"count"`
}

// ScoredCollection is one entry of ScoreCollectionsResponse.
type ScoredCollection struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	VectorCount int     `json:"vector_count"`
}

// ScoreCollectionsResponse is the answer of POST /discovery/score_collections.
type ScoreCollectionsResponse struct {
	ScoredCollections []ScoredCollection `json:"scored_collections"`
	Count             int                `json:"count"`
}

// ScoreCollectionsRequest drives POST /discovery/score_collections.
type ScoreCollectionsRequest struct {
	Query             string  `json:"query"`
	NameMatchWeight   float64 `json:"name_match_weight,omitempty"`
	TermBoostWeight   float64 `json:"term_boost_weight,omitempty"`
	SignalBoostWeight float64 `json:"signal_boost_weight,omitempty"`
}

// ExpandQueriesRequest drives POST /discovery/expand_queries.
type ExpandQueriesRequest struct {
	Query               string `json:"query"`
	MaxExpansions       int    `json:"max_expansions,omitempty"`
	IncludeDefinition   bool   `json:"include_definition"`
	IncludeFeatures     bool   `json:"include_features"`
	IncludeArchitecture bool   `json:"include_architecture"`
}

// ExpandQueriesResponse is the answer of POST /discovery/expand_queries.
type ExpandQueriesResponse struct {
	OriginalQuery   string   `json:"original_query"`
	ExpandedQueries []string `json:"expanded_queries"`
	Count           int      `json:"count"`
}

// FileMetadata describes an indexed file.
type FileMetadata struct {
	FileType    string  `json:"file_type"`
	SizeKB      float64 `json:"size_kb"`
	ChunkCount  int     `json:"chunk_count"`
	LastIndexed string  `json:"last_indexed"`
	Language    string  `json:"language,omitempty"`
}

// FileContent is the answer of POST /file/content.
type FileContent struct {
	FilePath        string       `json:"file_path"`
	Content         string       `json:"content"`
	Metadata        FileMetadata `json:"metadata"`
	ChunksAvailable int          `json:"chunks_available"`
	Collection      string       `json:"collection"`
	FromCache       bool         `json:"from_cache"`
}

// FileInfo is one entry of FileList.
type FileInfo struct {
	Path           string  `json:"path"`
	FileType       string  `json:"file_type"`
	ChunkCount     int     `json:"chunk_count"`
	SizeEstimateKB float64 `json:"size_estimate_kb"`
	LastIndexed    string  `json:"last_indexed"`
	HasSummary     bool    `json:"has_summary"`
}

// FileList is the answer of POST /file/list.
type FileList struct {
	Collection  string     `json:"collection"`
	Files       []FileInfo `json:"files"`
	TotalFiles  int        `json:"total_files"`
	TotalChunks int        `json:"total_chunks"`
}

// ListFilesOptions filters POST /file/list. SortBy is one of "name",
// "size", "chunks" or "recent".
type ListFilesOptions struct {
	FilterByType []string
	MinChunks    int
	MaxResults   int
	SortBy       string
}

// FileSummaryOptions tunes POST /file/summary. SummaryType is "extractive",
// "structural" or "both".
type FileSummaryOptions struct {
	SummaryType  string
	MaxSentences int
}

// FileChunksOptions pages POST /file/chunks.
type FileChunksOptions struct {
	StartChunk     int
	Limit          int
	IncludeContext bool
}

// ProjectOutlineOptions tunes POST /file/outline.
type ProjectOutlineOptions struct {
	MaxDepth          int
	IncludeSummaries  bool
	HighlightKeyFiles bool
}

// RelatedFilesOptions tunes POST /file/related.
type RelatedFilesOptions struct {
	Limit               int
	SimilarityThreshold float64
	IncludeReason       bool
}

// StructuralSummary is the outline part of a file summary.
type StructuralSummary struct {
	Outline     string   `json:"outline"`
	KeySections []string `json:"key_sections"`
	KeyPoints   []string `json:"key_points"`
}

// FileSummaryMetadata describes how a file summary was produced.
type FileSummaryMetadata struct {
	ChunkCount    int    `json:"chunk_count"`
	FileType      string `json:"file_type"`
	SummaryMethod string `json:"summary_method"`
}

// FileSummary is the answer of POST /file/summary.
type FileSummary struct {
	FilePath          string              `json:"file_path"`
	ExtractiveSummary string              `json:"extractive_summary,omitempty"`
	StructuralSummary *StructuralSummary  `json:"structural_summary,omitempty"`
	Metadata          FileSummaryMetadata `json:"metadata"`
	GeneratedAt       string              `json:"generated_at"`
}

// ContextHint previews the chunks around an OrderedChunk.
type ContextHint struct {
	PrevChunkPreview string `json:"prev_chunk_preview,omitempty"`
	NextChunkPreview string `json:"next_chunk_preview,omitempty"`
}

// OrderedChunk is one chunk of a file, in file order.
type OrderedChunk struct {
	Index       int          `json:"index"`
	Content     string       `json:"content"`
	LineRange   []int        `json:"line_range,omitempty"`
	ContextHint *ContextHint `json:"context_hint,omitempty"`
}

// OrderedChunks is the answer of POST /file/chunks.
type OrderedChunks struct {
	FilePath    string         `json:"file_path"`
	TotalChunks int            `json:"total_chunks"`
	Chunks      []OrderedChunk `json:"chunks"`
	HasMore     bool           `json:"has_more"`
	NextStart   int            `json:"next_start,omitempty"`
}

// FileNodeInfo annotates a file node of the project outline.
type FileNodeInfo struct {
	Chunks  int     `json:"chunks"`
	SizeKB  float64 `json:"size_kb"`
	Summary string  `json:"summary,omitempty"`
}

// OutlineNode is one node of the project outline tree. Type is "directory"
// or "file".
type OutlineNode struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Children []OutlineNode `json:"children,omitempty"`
	FileInfo *FileNodeInfo `json:"file_info,omitempty"`
}

// ProjectStatistics aggregates the outline tree.
type ProjectStatistics struct {
	TotalFiles       int            `json:"total_files"`
	TotalDirectories int            `json:"total_directories"`
	FileTypes        map[string]int `json:"file_types"`
}

// ProjectOutline is the answer of POST /file/outline.
type ProjectOutline struct {
	Collection string            `json:"collection"`
	Structure  OutlineNode       `json:"structure"`
	KeyFiles   []string          `json:"key_files"`
	Statistics ProjectStatistics `json:"statistics"`
}

// RelatedFile is one entry of RelatedFiles.
type RelatedFile struct {
	Path            string   `json:"path"`
	SimilarityScore float64  `json:"similarity_score"`
	Reason          string   `json:"reason,omitempty"`
	SharedConcepts  []string `json:"shared_concepts,omitempty"`
}

// RelatedFiles is the answer of POST /file/related.
type RelatedFiles struct {
	SourceFile string        `json:"source_file"`
	Related    []RelatedFile `json:"related_files"`
}

// FileUpload describes a file to be chunked, embedded and indexed via
// POST /files/upload.
type FileUpload struct {
	// Filename names the multipart file part. Required.
	Filename string
	// Content is the raw file body. Required.
	Content []byte
	// Collection receives the produced vectors. Required.
	Collection string
	// ChunkSize and ChunkOverlap tune chunking, in characters.
	ChunkSize    int
	ChunkOverlap int
	// Metadata is attached to every produced vector.
	Metadata map[string]interface{}
	// PublicKey enables server-side encryption for the produced vectors.
	PublicKey string
}

// FileUploadResponse reports an accepted upload.
type FileUploadResponse struct {
	Success          bool   `json:"success"`
	Filename         string `json:"filename"`
	Collection       string `json:"collection_name"`
	ChunksCreated    int    `json:"chunks_created"`
	VectorsCreated   int    `json:"vectors_created"`
	FileSize         int64  `json:"file_size"`
	Language         string `json:"language"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
}
