package docstore

import "context"

// StatusProcessed marks a document whose fields have been extracted and
// indexed. Ingestion treats any other status as unprocessed.
const StatusProcessed = "Processed"

type Store interface {
	GetStream(ctx context.Context, name string) ([]byte, error)
	SetMetadata(ctx context.Context, name string, metadata map[string]string) error
	Status(ctx context.Context, name string) (string, error)
}
