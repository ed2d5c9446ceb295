package vectorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
)

// GetFileContent returns the complete indexed content of one file.
// maxSizeKB caps the answer; zero asks for the server default.
func (c *Client) GetFileContent(ctx context.Context, collection string, filePath string, maxSizeKB int, userPreference ...ReadPreference) (*FileContent, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if filePath == "" {
		return nil, validationErrorf("file path must not be empty")
	}
	if maxSizeKB <= 0 {
		maxSizeKB = 500
	}
	payload := map[string]interface{}{
		"collection":  collection,
		"file_path":   filePath,
		"max_size_kb": maxSizeKB,
	}
	var content FileContent
	if err := c.call(ctx, OpGetFileContent, http.MethodPost, "/file/content", payload, &content, userPreference...); err != nil {
		return nil, err
	}
	return &content, nil
}

// ListFiles lists the indexed files of a collection. A nil opts lists up to
// 100 files sorted by name.
func (c *Client) ListFiles(ctx context.Context, collection string, opts *ListFilesOptions, userPreference ...ReadPreference) (*FileList, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	maxResults := 100
	sortBy := "name"
	payload := map[string]interface{}{"collection": collection}
	if opts != nil {
		if opts.MaxResults > 0 {
			maxResults = opts.MaxResults
		}
		if opts.SortBy != "" {
			sortBy = opts.SortBy
		}
		if len(opts.FilterByType) > 0 {
			payload["filter_by_type"] = opts.FilterByType
		}
		if opts.MinChunks > 0 {
			payload["min_chunks"] = opts.MinChunks
		}
	}
	payload["max_results"] = maxResults
	payload["sort_by"] = sortBy
	var list FileList
	if err := c.call(ctx, OpListFiles, http.MethodPost, "/file/list", payload, &list, userPreference...); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetFileSummary returns the stored summary of one file. A nil opts asks
// for both extractive and structural summaries.
func (c *Client) GetFileSummary(ctx context.Context, collection string, filePath string, opts *FileSummaryOptions, userPreference ...ReadPreference) (*FileSummary, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if filePath == "" {
		return nil, validationErrorf("file path must not be empty")
	}
	summaryType := "both"
	maxSentences := 5
	if opts != nil {
		if opts.SummaryType != "" {
			summaryType = opts.SummaryType
		}
		if opts.MaxSentences > 0 {
			maxSentences = opts.MaxSentences
		}
	}
	payload := map[string]interface{}{
		"collection":    collection,
		"file_path":     filePath,
		"summary_type":  summaryType,
		"max_sentences": maxSentences,
	}
	var summary FileSummary
	if err := c.call(ctx, OpGetFileSummary, http.MethodPost, "/file/summary", payload, &summary, userPreference...); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetFileChunks pages through a file's chunks in file order. A nil opts
// returns the first ten chunks with context hints.
func (c *Client) GetFileChunks(ctx context.Context, collection string, filePath string, opts *FileChunksOptions, userPreference ...ReadPreference) (*OrderedChunks, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if filePath == "" {
		return nil, validationErrorf("file path must not be empty")
	}
	startChunk := 0
	limit := 10
	includeContext := true
	if opts != nil {
		startChunk = opts.StartChunk
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		includeContext = opts.IncludeContext
	}
	payload := map[string]interface{}{
		"collection":      collection,
		"file_path":       filePath,
		"start_chunk":     startChunk,
		"limit":           limit,
		"include_context": includeContext,
	}
	var chunks OrderedChunks
	if err := c.call(ctx, OpGetFileChunks, http.MethodPost, "/file/chunks", payload, &chunks, userPreference...); err != nil {
		return nil, err
	}
	return &chunks, nil
}

// GetProjectOutline returns the hierarchical structure of an indexed
// project. A nil opts builds a five-level outline with key files
// highlighted.
func (c *Client) GetProjectOutline(ctx context.Context, collection string, opts *ProjectOutlineOptions, userPreference ...ReadPreference) (*ProjectOutline, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	maxDepth := 5
	includeSummaries := false
	highlightKeyFiles := true
	if opts != nil {
		if opts.MaxDepth > 0 {
			maxDepth = opts.MaxDepth
		}
		includeSummaries = opts.IncludeSummaries
		highlightKeyFiles = opts.HighlightKeyFiles
	}
	payload := map[string]interface{}{
		"collection":          collection,
		"max_depth":           maxDepth,
		"include_summaries":   includeSummaries,
		"highlight_key_files": highlightKeyFiles,
	}
	var outline ProjectOutline
	if err := c.call(ctx, OpGetProjectOutline, http.MethodPost, "/file/outline", payload, &outline, userPreference...); err != nil {
		return nil, err
	}
	return &outline, nil
}

// GetRelatedFiles finds files semantically related to one file. A nil opts
// returns up to five files above the 0.6 similarity bar with reasons.
func (c *Client) GetRelatedFiles(ctx context.Context, collection string, filePath string, opts *RelatedFilesOptions, userPreference ...ReadPreference) (*RelatedFiles, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if filePath == "" {
		return nil, validationErrorf("file path must not be empty")
	}
	limit := 5
	threshold := 0.6
	includeReason := true
	if opts != nil {
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		if opts.SimilarityThreshold > 0 {
			threshold = opts.SimilarityThreshold
		}
		includeReason = opts.IncludeReason
	}
	payload := map[string]interface{}{
		"collection":           collection,
		"file_path":            filePath,
		"limit":                limit,
		"similarity_threshold": threshold,
		"include_reason":       includeReason,
	}
	var related RelatedFiles
	if err := c.call(ctx, OpGetRelatedFiles, http.MethodPost, "/file/related", payload, &related, userPreference...); err != nil {
		return nil, err
	}
	return &related, nil
}

// UploadFile sends a file to be chunked, embedded and indexed. The body is
// multipart/form-data, routed to the master like every write.
func (c *Client) UploadFile(ctx context.Context, upload FileUpload) (*FileUploadResponse, error) {
	if upload.Filename == "" {
		return nil, validationErrorf("filename must not be empty")
	}
	if len(upload.Content) == 0 {
		return nil, validationErrorf("file content must not be empty")
	}
	if upload.Collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, validationErrorf("build multipart body: %s", err)
	}
	if _, err := part.Write(upload.Content); err != nil {
		return nil, validationErrorf("build multipart body: %s", err)
	}
	if err := form.WriteField("collection_name", upload.Collection); err != nil {
		return nil, validationErrorf("build multipart body: %s", err)
	}
	if upload.ChunkSize > 0 {
		if err := form.WriteField("chunk_size", strconv.Itoa(upload.ChunkSize)); err != nil {
			return nil, validationErrorf("build multipart body: %s", err)
		}
	}
	if upload.ChunkOverlap > 0 {
		if err := form.WriteField("chunk_overlap", strconv.Itoa(upload.ChunkOverlap)); err != nil {
			return nil, validationErrorf("build multipart body: %s", err)
		}
	}
	if upload.Metadata != nil {
		metadata, err := json.Marshal(upload.Metadata)
		if err != nil {
			return nil, validationErrorf("encode upload metadata: %s", err)
		}
		if err := form.WriteField("metadata", string(metadata)); err != nil {
			return nil, validationErrorf("build multipart body: %s", err)
		}
	}
	if upload.PublicKey != "" {
		if err := form.WriteField("public_key", upload.PublicKey); err != nil {
			return nil, validationErrorf("build multipart body: %s", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, validationErrorf("build multipart body: %s", err)
	}

	req := &Request{
		Op:          OpUploadFile,
		Method:      http.MethodPost,
		Path:        "/files/upload",
		Body:        body.Bytes(),
		ContentType: form.FormDataContentType(),
	}
	res, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	var answer FileUploadResponse
	if err := json.Unmarshal(res.Body, &answer); err != nil {
		return nil, ClientError{Code: ErrBadResponse, Msg: "decode upload_file response", Cause: err}
	}
	return &answer, nil
}
