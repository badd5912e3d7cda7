// Package model defines the lab's persistent entities and the request and
// response shapes of the command surface. Nullable database columns map to
// pointer fields.
package model

// Paginated wraps one page of results together with the window that
// produced it.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// BackupInfo describes one backup file on disk
type BackupInfo struct {
	FileName  string `json:"file_name"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}
