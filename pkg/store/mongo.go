package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
)

// DefaultMongoDatabase is used when the URI names no database.
const DefaultMongoDatabase = "bipartisan"

const (
	collSessions = "sessions"
	collRuns     = "runs"
)

// MongoStore keeps one document per session, keyed by session number, and
// appends a document per scrape run.
type MongoStore struct {
	client   *mongo.Client
	sessions *mongo.Collection
	runs     *mongo.Collection
}

// sessionDoc adds the dataset position so Load can restore file order.
type sessionDoc struct {
	congress.Session `bson:",inline"`
	Position         int `bson:"position"`
}

// NewMongoStore connects to uri and pings the server.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(mongoDatabase(uri))
	return &MongoStore{
		client:   client,
		sessions: db.Collection(collSessions),
		runs:     db.Collection(collRuns),
	}, nil
}

func mongoDatabase(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return DefaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return DefaultMongoDatabase
}

func (s *MongoStore) Load(ctx context.Context) (congress.Dataset, error) {
	cur, err := s.sessions.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []sessionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	ds := make(congress.Dataset, 0, len(docs))
	for _, d := range docs {
		ds = append(ds, d.Session)
	}
	return ds, nil
}

// Save upserts every session by number and only then prunes sessions that
// are no longer in ds. A failed write never empties the collection, so the
// previous dataset stays loadable.
func (s *MongoStore) Save(ctx context.Context, ds congress.Dataset, meta Meta) error {
	writes, kept, err := sessionWrites(ds)
	if err != nil {
		return err
	}
	if len(writes) > 0 {
		if _, err := s.sessions.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
			return fmt.Errorf("write sessions: %w", err)
		}
	}
	prune := bson.D{{Key: "_id", Value: bson.D{{Key: "$nin", Value: kept}}}}
	if _, err := s.sessions.DeleteMany(ctx, prune); err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	if meta.RunID != "" {
		if _, err := s.runs.InsertOne(ctx, meta); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}
	return nil
}

// sessionWrites builds one upsert per session and the list of session
// numbers to keep. Duplicate numbers are rejected before anything is sent.
func sessionWrites(ds congress.Dataset) ([]mongo.WriteModel, []int, error) {
	writes := make([]mongo.WriteModel, 0, len(ds))
	kept := make([]int, 0, len(ds))
	seen := make(map[int]bool, len(ds))
	for i, sess := range ds {
		if seen[sess.SessionNo] {
			return nil, nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate session %d", sess.SessionNo)
		}
		seen[sess.SessionNo] = true
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: sess.SessionNo}}).
			SetReplacement(sessionDoc{Session: sess, Position: i}).
			SetUpsert(true))
		kept = append(kept, sess.SessionNo)
	}
	return writes, kept, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
