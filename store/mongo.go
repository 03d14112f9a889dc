package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"aasaasi/config"
	"aasaasi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// MongoStore implements Store over a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(client *mongo.Client, database *mongo.Database) *MongoStore {
	return &MongoStore{client: client, db: database}
}

// IsUnavailable reports whether err means the database could not be
// reached, as opposed to a failed query.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err)
}

func (m *MongoStore) Backend() string { return config.BackendMongo }

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Counts fetches the content collection sizes concurrently.
func (m *MongoStore) Counts(ctx context.Context) (map[string]int64, error) {
	names := []string{ColDictionary, ColQuestions, ColIdioms, ColWodWords}
	var mu sync.Mutex
	out := make(map[string]int64, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		g.Go(func() error {
			n, err := m.db.Collection(name).CountDocuments(gctx, bson.M{})
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			mu.Lock()
			out[name] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the indexes the queries rely on.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		ColTests:         {{Keys: bson.D{{Key: "kind", Value: 1}}, Options: options.Index().SetUnique(true)}},
		ColWodHistory:    {{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)}},
		ColEvents:        {{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "ts", Value: 1}}}},
		ColConversations: {{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)}},
		ColAICache:       {{Keys: bson.D{{Key: "term", Value: 1}, {Key: "dir", Value: 1}, {Key: "kind", Value: 1}}}},
		ColDictionary: {
			{Keys: bson.D{{Key: "english", Value: 1}}},
			{Keys: bson.D{{Key: "somali", Value: 1}}},
		},
	}
	for name, idx := range specs {
		if _, err := m.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func headwordField(dir models.Direction) string {
	if dir == models.SomaliToEnglish {
		return "somali"
	}
	return "english"
}

func ciRegex(pattern string) primitive.Regex {
	return primitive.Regex{Pattern: pattern, Options: "i"}
}

// Dictionary

func (m *MongoStore) FindWord(ctx context.Context, term string, dir models.Direction) (*models.DictionaryEntry, error) {
	q := regexp.QuoteMeta(strings.TrimSpace(term))
	if q == "" {
		return nil, ErrNotFound
	}
	field := headwordField(dir)
	col := m.db.Collection(ColDictionary)

	for _, pattern := range []string{"^" + q + "$", "^" + q} {
		var entry models.DictionaryEntry
		err := col.FindOne(ctx, bson.M{field: ciRegex(pattern)}).Decode(&entry)
		if err == nil {
			return &entry, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

func (m *MongoStore) SuggestWords(ctx context.Context, prefix string, dir models.Direction, limit int) ([]string, error) {
	out := []string{}
	q := regexp.QuoteMeta(strings.TrimSpace(prefix))
	if q == "" {
		return out, nil
	}
	field := headwordField(dir)
	opts := options.Find().
		SetProjection(bson.M{field: 1, "_id": 0}).
		SetLimit(int64(limit * 2))
	cursor, err := m.db.Collection(ColDictionary).Find(ctx, bson.M{field: ciRegex("^" + q)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.DictionaryEntry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, d := range docs {
		head := strings.TrimSpace(d.Headword(dir))
		low := strings.ToLower(head)
		if head == "" || seen[low] {
			continue
		}
		seen[low] = true
		out = append(out, head)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Questions

type questionDoc struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	models.TestQuestion `bson:",inline"`
}

func (d questionDoc) model() models.TestQuestion {
	q := d.TestQuestion
	q.ID = d.ID.Hex()
	return q
}

func (m *MongoStore) SampleQuestions(ctx context.Context, filter QuestionFilter, n int) ([]models.TestQuestion, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"question": bson.M{"$ne": ""}, "correct": bson.M{"$ne": ""}}}},
	}
	if filter.Field != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$regexMatch": bson.M{
				"input":   bson.M{"$toString": "$" + filter.Field},
				"regex":   filter.Pattern,
				"options": "i",
			}},
		}}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$sample", Value: bson.M{"size": n}}})

	cursor, err := m.db.Collection(ColQuestions).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []questionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.TestQuestion, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (m *MongoStore) QuestionsByID(ctx context.Context, ids []string) (map[string]models.TestQuestion, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, &InvalidIDError{ID: id}
		}
		oids = append(oids, oid)
	}

	cursor, err := m.db.Collection(ColQuestions).Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []questionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make(map[string]models.TestQuestion, len(docs))
	for _, d := range docs {
		q := d.model()
		out[q.ID] = q
	}
	return out, nil
}

// Content

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoStore) GrammarTopics(ctx context.Context) ([]models.GrammarTopic, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "slug", Value: 1}})
	return findAll[models.GrammarTopic](ctx, m.db.Collection(ColGrammarTopics), bson.M{}, opts)
}

func (m *MongoStore) GrammarTips(ctx context.Context, topic string) (*models.GrammarTips, error) {
	var tips models.GrammarTips
	err := m.db.Collection(ColGrammarTips).FindOne(ctx, bson.M{"topic": topic}).Decode(&tips)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tips, nil
}

func (m *MongoStore) GrammarQuestions(ctx context.Context, topic string) ([]models.GrammarQuestion, error) {
	return findAll[models.GrammarQuestion](ctx, m.db.Collection(ColGrammarQuestions), bson.M{"topic": topic})
}

type idiomDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	models.IdiomDoc `bson:",inline"`
}

func (m *MongoStore) Idioms(ctx context.Context) ([]models.Idiom, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	docs, err := findAll[idiomDoc](ctx, m.db.Collection(ColIdioms), bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]models.Idiom, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Normalize(d.ID.Hex()))
	}
	return out, nil
}

func (m *MongoStore) VocabItems(ctx context.Context, kind models.VocabKind, level string) ([]models.VocabItem, error) {
	name := ColVocabMCQ
	if kind == models.VocabFill {
		name = ColVocabFill
	}
	filter := bson.M{}
	if level != "" {
		filter["level"] = level
	}
	return findAll[models.VocabItem](ctx, m.db.Collection(name), filter)
}

func (m *MongoStore) TestDocs(ctx context.Context) ([]models.TestDoc, error) {
	return findAll[models.TestDoc](ctx, m.db.Collection(ColTests), bson.M{})
}

func (m *MongoStore) TestByKind(ctx context.Context, kind string) (*models.TestDoc, error) {
	var doc models.TestDoc
	err := m.db.Collection(ColTests).FindOne(ctx, bson.M{"kind": kind}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Word of the day

type wodWordDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	models.WodWord `bson:",inline"`
}

func (m *MongoStore) WodWords(ctx context.Context) ([]models.WodWord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	docs, err := findAll[wodWordDoc](ctx, m.db.Collection(ColWodWords), bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]models.WodWord, 0, len(docs))
	for _, d := range docs {
		w := d.WodWord
		w.ID = d.ID.Hex()
		out = append(out, w)
	}
	return out, nil
}

func (m *MongoStore) WodHistoryOn(ctx context.Context, date string) (*models.WodHistory, error) {
	var h models.WodHistory
	err := m.db.Collection(ColWodHistory).FindOne(ctx, bson.M{"date": date}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (m *MongoStore) WodHistory(ctx context.Context, limit int) ([]models.WodHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return findAll[models.WodHistory](ctx, m.db.Collection(ColWodHistory), bson.M{}, opts)
}

func (m *MongoStore) SaveWodHistory(ctx context.Context, h models.WodHistory) error {
	_, err := m.db.Collection(ColWodHistory).UpdateOne(ctx,
		bson.M{"date": h.Date},
		bson.M{"$set": h},
		options.Update().SetUpsert(true),
	)
	return err
}

// Activity

func (m *MongoStore) Record(ctx context.Context, ev models.ActivityEvent) error {
	_, err := m.db.Collection(ColEvents).InsertOne(ctx, ev)
	return err
}

func (m *MongoStore) ReadAll(ctx context.Context, sessionID string, since time.Time) ([]models.ActivityEvent, error) {
	filter := bson.M{"sessionId": sessionID, "ts": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "ts", Value: 1}})
	return findAll[models.ActivityEvent](ctx, m.db.Collection(ColEvents), filter, opts)
}

// Conversations

func (m *MongoStore) AppendMessage(ctx context.Context, sessionID string, msg models.ChatMessage) error {
	_, err := m.db.Collection(ColConversations).UpdateOne(ctx,
		bson.M{"sessionId": sessionID},
		bson.M{
			"$setOnInsert": bson.M{"sessionId": sessionID, "createdAt": msg.TS},
			"$push":        bson.M{"messages": msg},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *MongoStore) Conversation(ctx context.Context, sessionID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := m.db.Collection(ColConversations).FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// AI cache

type backfillDoc struct {
	Term  string         `bson:"term"`
	Dir   string         `bson:"dir"`
	Kind  string         `bson:"kind"`
	Entry models.WordOut `bson:"entry"`
	TS    time.Time      `bson:"ts"`
}

func backfillFilter(term string, dir models.Direction) bson.M {
	return bson.M{"term": strings.ToLower(strings.TrimSpace(term)), "dir": string(dir), "kind": "backfill"}
}

func (m *MongoStore) CachedBackfill(ctx context.Context, term string, dir models.Direction) (*models.WordOut, error) {
	var doc backfillDoc
	err := m.db.Collection(ColAICache).FindOne(ctx, backfillFilter(term, dir)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc.Entry, nil
}

func (m *MongoStore) StoreBackfill(ctx context.Context, term string, dir models.Direction, entry models.WordOut) error {
	_, err := m.db.Collection(ColAICache).UpdateOne(ctx,
		backfillFilter(term, dir),
		bson.M{"$set": bson.M{"entry": entry, "ts": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}
