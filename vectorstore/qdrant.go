package vectorstore

import (
	"context"
	"fmt"

	"lawgpt-backend/models"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Narrow views over the generated gRPC clients, covering just the calls the
// store makes.
type qdrantCollectionsAPI interface {
	Delete(ctx context.Context, in *qdrant.DeleteCollection, opts ...grpc.CallOption) (*qdrant.CollectionOperationResponse, error)
	Create(ctx context.Context, in *qdrant.CreateCollection, opts ...grpc.CallOption) (*qdrant.CollectionOperationResponse, error)
}

type qdrantPointsAPI interface {
	Upsert(ctx context.Context, in *qdrant.UpsertPoints, opts ...grpc.CallOption) (*qdrant.PointsOperationResponse, error)
	Search(ctx context.Context, in *qdrant.SearchPoints, opts ...grpc.CallOption) (*qdrant.SearchResponse, error)
}

// Payload fields carried on every point
var qdrantPayloadFields = []string{"text", "title", "source", "law_type", "filename", "chunk_index"}

// QdrantStore implements Store over Qdrant's gRPC API. It assumes cosine
// distance; collection names are passed per call since documents are split
// across a law-articles collection and a court-cases collection.
type QdrantStore struct {
	conn        *grpc.ClientConn
	collections qdrantCollectionsAPI
	points      qdrantPointsAPI
}

// NewQdrantStore creates a new Qdrant store instance. The connection is
// lazy; Qdrant is first reached on the first call.
func NewQdrantStore(cfg StoreConfig) (*QdrantStore, error) {
	addr := cfg.QdrantAddr
	if addr == "" {
		addr = "localhost:6334"
	}

	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}

	return &QdrantStore{
		conn:        conn,
		collections: qdrant.NewCollectionsClient(conn),
		points:      qdrant.NewPointsClient(conn),
	}, nil
}

// Close releases the underlying gRPC connection
func (s *QdrantStore) Close() error {
	return s.conn.Close()
}

// CreateCollection drops any existing collection and recreates it with
// cosine distance
func (s *QdrantStore) CreateCollection(ctx context.Context, collection string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid embedding dimension: %d", dimension)
	}

	// Best-effort delete; Qdrant reports a false result when the collection
	// is missing
	_, _ = s.collections.Delete(ctx, &qdrant.DeleteCollection{
		CollectionName: collection,
	})

	_, err := s.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(dimension),
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", collection, err)
	}
	return nil
}

// Upsert writes document points into a collection
func (s *QdrantStore) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id: &qdrant.PointId{
				PointIdOptions: &qdrant.PointId_Uuid{Uuid: p.ID},
			},
			Vectors: &qdrant.Vectors{
				VectorsOptions: &qdrant.Vectors_Vector{
					Vector: &qdrant.Vector{Data: toFloat32(p.Vector)},
				},
			},
			Payload: documentPayload(p.Document),
		}
	}

	wait := true
	_, err := s.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           &wait,
		Points:         qdrantPoints,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", collection, err)
	}
	return nil
}

// Search returns the topK nearest documents to the query vector
func (s *QdrantStore) Search(ctx context.Context, collection string, vector []float64, topK int) ([]models.Document, error) {
	if topK <= 0 {
		topK = 5
	}

	resp, err := s.points.Search(ctx, &qdrant.SearchPoints{
		CollectionName: collection,
		Vector:         toFloat32(vector),
		Limit:          uint64(topK),
		WithPayload: &qdrant.WithPayloadSelector{
			SelectorOptions: &qdrant.WithPayloadSelector_Include{
				Include: &qdrant.PayloadIncludeSelector{
					Fields: qdrantPayloadFields,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(resp.Result))
	for _, point := range resp.Result {
		docs = append(docs, payloadDocument(point.Payload, point.GetScore()))
	}
	return docs, nil
}

// documentPayload converts a document to a Qdrant point payload
func documentPayload(doc models.Document) map[string]*qdrant.Value {
	return map[string]*qdrant.Value{
		"text":        {Kind: &qdrant.Value_StringValue{StringValue: doc.Text}},
		"title":       {Kind: &qdrant.Value_StringValue{StringValue: doc.Title}},
		"source":      {Kind: &qdrant.Value_StringValue{StringValue: doc.Source}},
		"law_type":    {Kind: &qdrant.Value_StringValue{StringValue: doc.LawType}},
		"filename":    {Kind: &qdrant.Value_StringValue{StringValue: doc.Filename}},
		"chunk_index": {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(doc.ChunkIndex)}},
	}
}

// payloadDocument converts a scored point payload back to a document. The
// generated getters are nil-safe, so missing payload fields stay zero.
func payloadDocument(payload map[string]*qdrant.Value, score float32) models.Document {
	return models.Document{
		Text:       payload["text"].GetStringValue(),
		Title:      payload["title"].GetStringValue(),
		Source:     payload["source"].GetStringValue(),
		LawType:    payload["law_type"].GetStringValue(),
		Filename:   payload["filename"].GetStringValue(),
		ChunkIndex: int(payload["chunk_index"].GetIntegerValue()),
		Score:      float64(score),
	}
}

func toFloat32(vector []float64) []float32 {
	out := make([]float32, len(vector))
	for i, v := range vector {
		out[i] = float32(v)
	}
	return out
}
