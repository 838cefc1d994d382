package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docstream/document-platform/internal/core/domain"
	"github.com/docstream/document-platform/internal/core/ports"
)

const ingestionCollection = "ingestion_requests"

type IngestionRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewIngestionRepository(db *mongo.Database) *IngestionRepository {
	return &IngestionRepository{db: db, coll: db.Collection(ingestionCollection)}
}

// Insert assigns the next numeric id and stores the request. When ctx is a
// session context produced by TxRunner the write joins that transaction.
func (r *IngestionRepository) Insert(ctx context.Context, req *domain.IngestionRequest) (*domain.IngestionRequest, error) {
	id, err := nextID(ctx, r.db, ingestionCollection)
	if err != nil {
		return nil, err
	}

	stored := *req
	stored.ID = id
	if _, err := r.coll.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert ingestion request: %w", err)
	}
	return &stored, nil
}

func (r *IngestionRepository) FindByID(ctx context.Context, id int64) (*domain.IngestionRequest, error) {
	var req domain.IngestionRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIngestionNotFound
		}
		return nil, fmt.Errorf("find ingestion request: %w", err)
	}
	return &req, nil
}

func (r *IngestionRepository) Update(ctx context.Context, req *domain.IngestionRequest) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("update ingestion request: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIngestionNotFound
	}
	return nil
}

// ListAllJoined returns all requests in insertion order (ascending numeric
// id), each joined with the referenced document's title via $lookup.
func (r *IngestionRepository) ListAllJoined(ctx context.Context) ([]ports.IngestionDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: documentsCollection},
			{Key: "localField", Value: "document_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "document"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$document"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list ingestion requests: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		domain.IngestionRequest `bson:",inline"`
		Document                struct {
			Title string `bson:"title"`
		} `bson:"document"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode ingestion requests: %w", err)
	}

	details := make([]ports.IngestionDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, ports.IngestionDetail{
			Request:       row.IngestionRequest,
			DocumentTitle: row.Document.Title,
		})
	}
	return details, nil
}
